package mapping

import (
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/models"
)

// ToModelClone converts a domain Clone to a model Clone
func ToModelClone(d domain.Clone) models.Clone {
	return models.Clone{
		CloneID:           d.CloneID,
		Name:              d.Name,
		Destination:       d.Destination,
		Status:            models.CloneStatus(d.Status),
		TravelHours:       d.TravelHours,
		ActivityDays:      d.ActivityDays,
		Preferences:       d.Preferences,
		Budget:            string(d.Budget),
		Pack:              string(d.Pack),
		IsPremium:         d.IsPremium,
		DepartureTime:     d.DepartureTime,
		ArrivalTime:       d.ArrivalTime,
		ActivityEndTime:   d.ActivityEndTime,
		LastJournalUpdate: d.LastJournalUpdate,
		TotalSpend:        d.TotalSpend,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClone converts a model Clone to a domain Clone
func ToDomainClone(m models.Clone) domain.Clone {
	return domain.Clone{
		CloneID:           m.CloneID,
		Name:              m.Name,
		Destination:       m.Destination,
		Status:            domain.CloneStatus(m.Status),
		TravelHours:       m.TravelHours,
		ActivityDays:      m.ActivityDays,
		Preferences:       m.Preferences,
		Budget:            domain.BudgetTier(m.Budget),
		Pack:              domain.PackID(m.Pack),
		IsPremium:         m.IsPremium,
		DepartureTime:     m.DepartureTime,
		ArrivalTime:       m.ArrivalTime,
		ActivityEndTime:   m.ActivityEndTime,
		LastJournalUpdate: m.LastJournalUpdate,
		TotalSpend:        m.TotalSpend,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCloneSlice converts a slice of model Clones
func ToDomainCloneSlice(ms []models.Clone) []domain.Clone {
	ds := make([]domain.Clone, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClone(m)
	}
	return ds
}
