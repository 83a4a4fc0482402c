// Package badge renders the printable artifact returned by the scan
// endpoint and attached to ticket emails. Visual design is an external
// concern; this implementation produces a minimal HTML badge that a
// downstream print service turns into PDF.
package badge

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/Eursukkul/event-registration-service/internal/models"
)

const (
	ModeBadge = "badge"
	ModePDF   = "pdf"
)

type Renderer interface {
	Render(ctx context.Context, entityType string, reg *models.Registrant, mode string) ([]byte, error)
}

var badgeTmpl = template.Must(template.New("badge").Parse(`<!DOCTYPE html>
<html>
<body>
<div class="badge">
  <h1>{{.Name}}</h1>
  <p class="category">{{.Category}}</p>
  <p class="role">{{.EntityType}}</p>
  <p class="code">{{.TicketCode}}</p>
</div>
</body>
</html>
`))

type htmlRenderer struct{}

func NewHTMLRenderer() Renderer {
	return &htmlRenderer{}
}

func (r *htmlRenderer) Render(ctx context.Context, entityType string, reg *models.Registrant, mode string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	code := ""
	if reg.TicketCode != nil {
		code = *reg.TicketCode
	}
	name := ""
	if v, ok := reg.Extra["full_name"].(string); ok {
		name = v
	} else if v, ok := reg.Extra["name"].(string); ok {
		name = v
	}

	var buf bytes.Buffer
	err := badgeTmpl.Execute(&buf, map[string]string{
		"Name":       name,
		"Category":   reg.TicketCategory,
		"EntityType": entityType,
		"TicketCode": code,
	})
	if err != nil {
		return nil, fmt.Errorf("render badge: %w", err)
	}
	return buf.Bytes(), nil
}
