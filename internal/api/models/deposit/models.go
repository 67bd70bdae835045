// deposit holds the API Deposit models. The fields translate one to one with
// the domain model; Ports are always rendered in their canonical string form
// on this side of the wire.
package deposit

import (
	domainDeposit "github.com/openrds/depositsync/internal/domain/deposit"
	"github.com/openrds/depositsync/internal/domain/research"
)

type Deposit struct {
	UserId        string               `json:"user_id" binding:"required" example:"u1"`
	ResearchIndex research.Index       `json:"research_index" binding:"required,researchIndex" example:"42"`
	Port          string               `json:"port" binding:"required" example:"2"`
	Metadata      domainDeposit.Fields `json:"metadata" swaggertype:"object"`
}

type List struct {
	Deposits []Deposit `json:"list"`
}

// UpdateRequest carries the metadata payload for a partial update of the
// remote record addressed by the path.
type UpdateRequest struct {
	Metadata domainDeposit.Fields `json:"metadata" binding:"required" swaggertype:"object"`
}

// FromDomainDeposit converts a domain model to the API model
func FromDomainDeposit(d *domainDeposit.Deposit) Deposit {
	return Deposit{
		UserId:        string(d.UserId),
		ResearchIndex: d.ResearchIndex,
		Port:          string(d.Port),
		Metadata:      d.Fields,
	}
}

func FromDomainDeposits(deposits []domainDeposit.Deposit) List {
	apiDeposits := make([]Deposit, 0, len(deposits))
	for i := range deposits {
		apiDeposits = append(apiDeposits, FromDomainDeposit(&deposits[i]))
	}
	return List{Deposits: apiDeposits}
}
