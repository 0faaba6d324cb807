package application

import (
	"time"

	"github.com/davicafu/sharedkernel/internal/partner/domain"
	sharedApp "github.com/davicafu/sharedkernel/shared/application"
)

// PartnerView es la proyección de lectura; los campos presentes dependen de la QueryView.
type PartnerView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	Email     string     `json:"email,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	DeletedBy string     `json:"deletedBy,omitempty"`
}

// NewPartnerView proyecta el snapshot:
// SUMMARY = id, nombre y estado; DETAILED añade email y fechas; FULL añade el borrado.
func NewPartnerView(s domain.Snapshot, view sharedApp.QueryView) PartnerView {
	v := PartnerView{
		ID:     s.ID.String(),
		Name:   s.Name,
		Status: string(s.Status),
	}
	if view == sharedApp.ViewSummary {
		return v
	}

	createdAt, updatedAt := s.CreatedAt, s.UpdatedAt
	v.Email = s.Email
	v.CreatedAt = &createdAt
	v.UpdatedAt = &updatedAt
	if view == sharedApp.ViewFull {
		v.DeletedAt = s.DeletedAt
		if s.DeletedBy != nil {
			v.DeletedBy = s.DeletedBy.String()
		}
	}
	return v
}

// ViewOf proyecta un agregado.
func ViewOf(p *domain.Partner, view sharedApp.QueryView) PartnerView {
	return NewPartnerView(p.Snapshot(), view)
}
