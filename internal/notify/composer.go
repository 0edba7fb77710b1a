// Package notify renders customer-facing status messages from
// operator-editable templates. Rendering is side-effect-free; persisting
// and dispatching the result is the caller's job.
package notify

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"printshop/internal/domain"
	"printshop/internal/pricing"
)

// Placeholder tokens are a persisted contract: operators edit template
// bodies around them, so the names never change.
const (
	tokenHonorific    = "{{tratamiento}}"
	tokenJobName      = "{{nombre_trabajo}}"
	tokenJobKind      = "{{tipo_trabajo}}"
	tokenDescription  = "{{caracteristicas}}"
	tokenQuantity     = "{{millares}}"
	tokenFinishes     = "{{terminaciones_especiales}}"
	tokenObservations = "{{observaciones}}"
	tokenImage        = "{{imagen_trabajo}}"
	tokenBalance      = "{{saldo_pendiente}}"
)

// NotSpecified substitutes display text for references that are
// legitimately absent. It is never used to paper over a reference that
// exists but cannot be resolved.
const NotSpecified = "No especificado"

const noFinishes = "Ninguna"
const noObservations = "Sin observaciones"

// Composer renders templates for a fixed shop locale.
type Composer struct {
	log     zerolog.Logger
	printer *message.Printer
	titler  cases.Caser

	// AllowRawReferences enables the last-resort display fallback: an
	// unresolvable product or finish reference is substituted as its raw
	// id and logged, instead of failing the render. Off by default so the
	// gap surfaces as ErrUnresolvedReference.
	AllowRawReferences bool
}

// NewComposer builds a composer formatting numbers for Spanish-speaking
// customers.
func NewComposer(log zerolog.Logger) *Composer {
	return &Composer{
		log:     log,
		printer: message.NewPrinter(language.Spanish),
		titler:  cases.Title(language.Spanish),
	}
}

// Render resolves the template for key and substitutes the full
// placeholder set from the job snapshot. The remaining balance is computed
// and substituted only for the packed template; other templates do not
// carry the balance token.
func (c *Composer) Render(
	key domain.TemplateKey,
	templates domain.Templates,
	job domain.JobSpec,
	customer domain.Customer,
	catalog domain.Catalog,
	payments []domain.Payment,
) (string, error) {
	body, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("template %q: %w", key, domain.ErrMissingTemplate)
	}

	description, err := c.describeProduct(job, catalog)
	if err != nil {
		return "", err
	}
	finishes, err := c.describeFinishes(job, catalog)
	if err != nil {
		return "", err
	}

	pairs := []string{
		tokenHonorific, orSentinel(strings.TrimSpace(customer.Honorific+" "+customer.Name), "Estimado/a cliente"),
		tokenJobName, orSentinel(job.Name, NotSpecified),
		tokenJobKind, kindLabel(job.Product.Kind),
		tokenDescription, description,
		tokenQuantity, c.describeQuantity(job),
		tokenFinishes, finishes,
		tokenObservations, orSentinel(job.Observations, noObservations),
		tokenImage, orSentinel(job.ImageRef, NotSpecified),
	}

	if key == domain.TemplatePacked {
		summary, err := pricing.Summarize(job, catalog, payments)
		if err != nil {
			return "", err
		}
		pairs = append(pairs, tokenBalance, c.FormatMoney(summary.RemainingBalance))
	}

	return strings.NewReplacer(pairs...).Replace(body), nil
}

// FormatMoney renders an amount as customer-facing currency text.
func (c *Composer) FormatMoney(m domain.Money) string {
	return c.printer.Sprintf("Gs. %v", number.Decimal(int64(m)))
}

func (c *Composer) describeProduct(job domain.JobSpec, catalog domain.Catalog) (string, error) {
	switch job.Product.Kind {
	case domain.ProductCard:
		if job.Product.ReferenceID == "" {
			return NotSpecified, nil
		}
		name, err := catalog.CardName(job.Product.ReferenceID)
		if err != nil {
			name, err = c.fallbackReference(job.Product.ReferenceID, err)
			if err != nil {
				return "", err
			}
		}
		return name + " - " + c.groupLabel(job.Product.Group), nil
	case domain.ProductFlyer:
		if job.Product.Size == "" && job.Product.PrintMode == "" {
			return NotSpecified, nil
		}
		return job.Product.Size + " - " + job.Product.PrintMode, nil
	default:
		return "", fmt.Errorf("product kind %q: %w", job.Product.Kind, domain.ErrUnresolvedReference)
	}
}

func (c *Composer) describeFinishes(job domain.JobSpec, catalog domain.Catalog) (string, error) {
	if len(job.Finishes) == 0 {
		return noFinishes, nil
	}
	var b strings.Builder
	for i, sel := range job.Finishes {
		name, err := catalog.FinishName(sel.FinishID)
		if err != nil {
			name, err = c.fallbackReference(sel.FinishID, err)
			if err != nil {
				return "", err
			}
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + name)
	}
	return b.String(), nil
}

func (c *Composer) describeQuantity(job domain.JobSpec) string {
	q := fmt.Sprintf("%d millares", job.QuantityThousands)
	if job.Halved {
		q += " (1x2)"
	}
	return q
}

// fallbackReference applies the sanctioned raw-id degradation when enabled.
// The substitution is logged so the catalog gap stays visible.
func (c *Composer) fallbackReference(rawID string, cause error) (string, error) {
	if !c.AllowRawReferences {
		return "", cause
	}
	c.log.Warn().Str("reference", rawID).Err(cause).
		Msg("substituting raw reference id into customer-facing text")
	return rawID, nil
}

func (c *Composer) groupLabel(g domain.CardGroup) string {
	switch g {
	case domain.GroupGloss:
		return "Brillo"
	case domain.GroupMatteReserve:
		return "Mate Reserva"
	default:
		return c.titler.String(strings.ReplaceAll(string(g), "_", " "))
	}
}

func kindLabel(k domain.ProductKind) string {
	switch k {
	case domain.ProductCard:
		return "Tarjetas"
	case domain.ProductFlyer:
		return "Volantes"
	default:
		return NotSpecified
	}
}

func orSentinel(v, sentinel string) string {
	if strings.TrimSpace(v) == "" {
		return sentinel
	}
	return v
}
