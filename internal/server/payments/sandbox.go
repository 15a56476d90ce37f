package payments

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/google/uuid"
)

// SandboxGateway approves every charge synchronously. It backs the memory
// storage mode and any method whose provider credentials are absent.
type SandboxGateway struct {
	method models.PaymentMethod

	mu      sync.Mutex
	charges map[string]Intent
}

func NewSandboxGateway(method models.PaymentMethod) *SandboxGateway {
	return &SandboxGateway{method: method, charges: make(map[string]Intent)}
}

func (g *SandboxGateway) Method() models.PaymentMethod { return g.method }

func (g *SandboxGateway) Create(ctx context.Context, c Charge) (*Intent, error) {
	in := Intent{
		Reference: fmt.Sprintf("sandbox_%s", uuid.NewString()),
		Status:    StatusSucceeded,
		Amount:    c.Amount,
		Currency:  c.Currency,
		UserID:    c.UserID,
	}

	g.mu.Lock()
	g.charges[in.Reference] = in
	g.mu.Unlock()

	return &in, nil
}

func (g *SandboxGateway) Capture(ctx context.Context, reference string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	in, ok := g.charges[reference]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &in, nil
}
