// Copyright (c) 2026 Litfair. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"strings"

	"github.com/taibuivan/litfair/internal/platform/apperr"
)

// Report is a complaint a customer files against an offer. It links two
// owners at once: the reported offer and the reporting customer, and both
// sides keep a symmetric set of their reports.
type Report struct {
	id       string
	reason   string
	offer    *Offer
	reporter *Customer
}

// NewReport constructs a report wired into both the offer's and the
// reporter's report sets.
func NewReport(reason string, offer *Offer, reporter *Customer) (*Report, error) {
	if offer == nil {
		return nil, apperr.Structural("Report requires an offer")
	}
	if reporter == nil {
		return nil, apperr.Structural("Report requires a reporting customer")
	}
	report := &Report{reason: reason, offer: offer, reporter: reporter}
	if err := offer.AddReport(report); err != nil {
		return nil, err
	}
	if err := reporter.AddReport(report); err != nil {
		offer.RemoveReport(report)
		return nil, err
	}
	return report, nil
}

// ID returns the persistent identity, or "" before the first save.
func (r *Report) ID() string { return r.id }

func (r *Report) setID(id string) { r.id = id }

// Reason returns the complaint text.
func (r *Report) Reason() string { return r.reason }

// SetReason replaces the complaint text.
func (r *Report) SetReason(reason string) { r.reason = reason }

// Offer returns the reported offer, or nil after detachment.
func (r *Report) Offer() *Offer { return r.offer }

// SetOffer attaches or detaches the reported offer. A different offer
// while one is recorded is a structural violation; nil detaches the
// report from the offer's set.
func (r *Report) SetOffer(offer *Offer) error {
	current := r.offer

	if offer != nil && current != nil && offer != current {
		return apperr.Structural("Report is attached to another offer")
	}

	if offer == nil {
		if current != nil {
			r.offer = nil
			current.RemoveReport(r)
		}
		return nil
	}

	if current == nil {
		r.offer = offer
		if !offer.HasReport(r) {
			return offer.AddReport(r)
		}
	}
	return nil
}

// Reporter returns the reporting customer, or nil after detachment.
func (r *Report) Reporter() *Customer { return r.reporter }

// SetReporter attaches or detaches the reporting customer, with the same
// ownership rules as [Report.SetOffer].
func (r *Report) SetReporter(reporter *Customer) error {
	current := r.reporter

	if reporter != nil && current != nil && reporter != current {
		return apperr.Structural("Report is attached to another customer")
	}

	if reporter == nil {
		if current != nil {
			r.reporter = nil
			current.RemoveReport(r)
		}
		return nil
	}

	if current == nil {
		r.reporter = reporter
		if !reporter.HasReport(r) {
			return reporter.AddReport(r)
		}
	}
	return nil
}

// Violations returns every invalid attribute of the report.
func (r *Report) Violations() []apperr.FieldError {
	var violations []apperr.FieldError
	if strings.TrimSpace(r.reason) == "" {
		violations = append(violations, apperr.FieldError{Field: FieldDescription, Message: "Report reason can't be blank"})
	}
	return violations
}
