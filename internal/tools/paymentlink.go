package tools

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"payumcp/internal/customers"
)

var validate *validator.Validate

var linkNameRe = regexp.MustCompile(`^[\w\s-]+$`)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterValidation("linkname", func(fl validator.FieldLevel) bool {
		return linkNameRe.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("gatewayphone", func(fl validator.FieldLevel) bool {
		return customers.ValidPhone(fl.Field().String())
	})
}

// LinkRequest is the payment-link creation intent. Constructed per call,
// consumed once.
type LinkRequest struct {
	Amount      decimal.Decimal
	Description string
	Name        string `validate:"omitempty,linkname"`
	Phone       string `validate:"omitempty,gatewayphone"`
	Email       string `validate:"omitempty,email"`
}

// check validates the intent before any network activity. A non-empty return
// is the user-facing rejection message.
func (r LinkRequest) check() string {
	if r.Amount.Sign() <= 0 {
		return "Invalid amount."
	}
	if strings.TrimSpace(r.Description) == "" {
		return "Invalid description."
	}
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Sprintf("Invalid %s format.", strings.ToLower(verrs[0].Field()))
		}
		return "Invalid request."
	}
	return ""
}

// CreatePaymentLink validates the intent, resolves the customer identity and
// creates the link. When the name matches several directory records no link
// is created; the reply lists the candidates and asks for a specific email or
// phone instead.
func (s *Service) CreatePaymentLink(ctx context.Context, req LinkRequest) string {
	if msg := req.check(); msg != "" {
		return msg
	}

	res := s.resolver.Resolve(ctx, customers.Identity{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if res.Ambiguous {
		return fmt.Sprintf(
			"Multiple customers found (%d total):\n%s\n\nPlease specify a customer by providing their email or phone number to proceed.",
			len(res.Candidates), res.Listing())
	}

	return s.createLink(ctx, req, res.Identity)
}

func (s *Service) createLink(ctx context.Context, req LinkRequest, id customers.Identity) string {
	body := map[string]any{
		"viaSms":      id.Phone != "",
		"viaEmail":    id.Email != "",
		"subAmount":   req.Amount.InexactFloat64(),
		"description": req.Description,
		"source":      "payment_link_onedash",
		"customer": map[string]any{
			"name":  id.Name,
			"email": id.Email,
			"phone": id.Phone,
		},
	}

	data, err := s.gateway.Do(ctx, s.gateway.BaseURL()+"/payment-links", nil, body)
	if err != nil {
		return "Failed to create payment link. Please check the inputs and try again."
	}
	result, ok := data["result"].(map[string]any)
	if !ok {
		return "Failed to create payment link. Please check the inputs and try again."
	}

	lines := []string{
		"- name: " + id.Name,
		"- paymentLink: " + display(result["paymentLink"], "No payment link found"),
		"- description: " + display(result["description"], "No description found"),
		"- phone: " + customers.MaskPhone(id.Phone),
		"- email: " + customers.MaskEmail(id.Email),
		"- invoiceNumber: " + display(result["invoiceNumber"], "No invoice number found"),
	}
	return strings.Join(lines, "\n")
}
