// Package payload turns a snapshot of the form state into the webhook wire
// payload, after a validation pass that reports every violation at once.
package payload

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/CreativVentures-hub/focus-group-ai/catalog"
	"github.com/CreativVentures-hub/focus-group-ai/model"
)

const (
	SessionNameMinLength = 3
	SessionNameMaxLength = 100
	ParticipantsMin      = 5
	ParticipantsMax      = 50
	MaxCategories        = 5
	MaxQuestions         = 10
)

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form is an immutable snapshot of the draft state at submit time.
type Form struct {
	model.SessionFields

	// Committed picker selections as catalog wire values.
	BuyingBehaviors   []string
	ProductCategories []string
	Demographics      map[string][]string
}

// Validate checks every rule and returns all violations joined by newlines,
// never just the first one.
func (f Form) Validate(cat *catalog.Catalog) error {
	var result *multierror.Error

	fail := func(msg string, args ...any) {
		result = multierror.Append(result, fmt.Errorf(msg, args...))
	}

	categories := len(f.BuyingBehaviors) + len(f.ProductCategories)
	if categories == 0 {
		fail("Please select at least one participant category")
	} else if categories > MaxCategories {
		fail("Please select no more than %d participant categories", MaxCategories)
	}

	if f.SessionType == "" {
		fail("Please select a session type")
	} else if sessionType, ok := cat.SessionType(f.SessionType); !ok {
		fail("Unknown session type %q", f.SessionType)
	} else if sessionType.Disabled {
		fail("Session type %q is not available yet", sessionType.Label)
	} else {
		f.validateSessionFields(fail)
	}

	if f.SessionName == "" {
		fail("Please enter a session name")
	} else if n := len(f.SessionName); n < SessionNameMinLength || n > SessionNameMaxLength {
		fail("Session name must be between %d and %d characters", SessionNameMinLength, SessionNameMaxLength)
	}

	if f.UserEmail == "" {
		fail("Please enter your email address")
	} else if !reEmail.MatchString(f.UserEmail) {
		fail("Please enter a valid email address")
	}

	if f.NumberOfParticipants < ParticipantsMin || f.NumberOfParticipants > ParticipantsMax {
		fail("Number of participants must be between %d and %d", ParticipantsMin, ParticipantsMax)
	}

	if len(f.Questions) > MaxQuestions {
		fail("Please enter no more than %d questions", MaxQuestions)
	}

	if result == nil {
		return nil
	}
	result.ErrorFormat = listViolations
	return result
}

// validateSessionFields checks the required fields of the active session type
// only; fields of the other types are out of the validation set.
func (f Form) validateSessionFields(fail func(msg string, args ...any)) {
	switch f.SessionType {
	case "market_research":
		if f.MarketName == "" {
			fail("Please enter a market name")
		}
		if f.MarketDescription == "" {
			fail("Please enter a market description")
		}
	case "product_research":
		if f.ProductName == "" {
			fail("Please enter a product name")
		}
		if f.ProductDescription == "" {
			fail("Please enter a product description")
		}
		if f.ProductPrice == "" {
			fail("Please enter a product price")
		}
	case "brand_perception":
		if f.BrandName == "" {
			fail("Please enter a brand name")
		}
		if f.BrandDescription == "" {
			fail("Please enter a brand description")
		}
	}
}

func listViolations(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Violations unpacks a Validate error into its individual messages.
func Violations(err error) []string {
	if err == nil {
		return nil
	}
	if result, ok := err.(*multierror.Error); ok {
		msgs := make([]string, len(result.Errors))
		for i, e := range result.Errors {
			msgs[i] = e.Error()
		}
		return msgs
	}
	return []string{err.Error()}
}

// Assemble builds the wire payload from the form snapshot. It performs no
// validation; callers must run Validate first. Fields of inactive session
// types are left out entirely. Every filter array is non-empty: unselected
// dimensions carry the "any" sentinel.
func (f Form) Assemble(now time.Time) model.Payload {
	p := model.Payload{
		SessionType:          f.SessionType,
		SessionName:          f.SessionName,
		NumberOfParticipants: f.NumberOfParticipants,
		UserEmail:            f.UserEmail,

		Categories: categoryTokens(f.BuyingBehaviors, f.ProductCategories),

		Gender:         Tokens(f.Demographics["gender"]),
		AgeRange:       Tokens(f.Demographics["age_range"]),
		IncomeRange:    Tokens(f.Demographics["income_range"]),
		MaritalStatus:  Tokens(f.Demographics["marital_status"]),
		HasChildren:    Tokens(f.Demographics["has_children"]),
		EducationLevel: Tokens(f.Demographics["education_level"]),
		Race:           Tokens(f.Demographics["race"]),

		Timestamp: now.UTC().Format(time.RFC3339),
		Source:    model.Source,
	}

	switch f.SessionType {
	case "market_research":
		p.MarketName = f.MarketName
		p.MarketDescription = f.MarketDescription
		p.Questions = f.Questions
	case "product_research":
		p.ProductName = f.ProductName
		p.ProductDescription = f.ProductDescription
		p.ProductPrice = f.ProductPrice
		p.HasProductImage = &f.HasProductImage
		p.Questions = f.Questions
	case "brand_perception":
		p.BrandName = f.BrandName
		p.BrandDescription = f.BrandDescription
		p.HasBrandImage = &f.HasBrandImage
		p.Questions = f.Questions
	}

	return p
}

// categoryTokens merges both category pickers into the single wire array the
// downstream workflow expects. The union stays non-empty by the same sentinel
// rule as the demographic filters.
func categoryTokens(behaviors, categories []string) []string {
	labels := make([]string, 0, len(behaviors)+len(categories))
	labels = append(labels, behaviors...)
	labels = append(labels, categories...)
	if len(labels) == 0 {
		return []string{Sentinel}
	}

	seen := map[string]bool{}
	tokens := []string{}
	for _, label := range labels {
		token := Normalize(label)
		if !seen[token] {
			seen[token] = true
			tokens = append(tokens, token)
		}
	}
	return tokens
}
