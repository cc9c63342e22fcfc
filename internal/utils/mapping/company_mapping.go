package mapping

import (
	"github.com/poslite/poslite_backend/internal/core/domain"
	"github.com/poslite/poslite_backend/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:        d.CompanyID,
		Name:             d.Name,
		BaseCurrencyCode: d.BaseCurrencyCode,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:        m.CompanyID,
		Name:             m.Name,
		BaseCurrencyCode: m.BaseCurrencyCode,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMembership converts a model CompanyMembership to a domain CompanyMembership
func ToDomainMembership(m models.CompanyMembership) domain.CompanyMembership {
	return domain.CompanyMembership{
		CompanyID:   m.CompanyID,
		UserID:      m.UserID,
		Role:        domain.CompanyRole(m.Role),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
