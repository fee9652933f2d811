// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"blogsquare/internal/contact"
	"blogsquare/internal/render"
)

// ContactSubmit validates the contact form and holds the request for the
// simulated send latency. HTMX requests get the re-rendered form back:
// field errors on failure, or a cleared form with the success notice.
// Plain form posts get the whole contact page.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := contact.NewForm(p.contact)
	defer form.Close()

	form.Update(contact.Submission{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	})

	var (
		errs   contact.FieldErrors
		status = http.StatusOK
		verr   *contact.ValidationError
	)
	err := form.Submit(r.Context())
	switch {
	case err == nil:
		// The message is discarded; only the fact that one arrived is logged.
		slog.Info("contact message accepted")
	case errors.As(err, &verr):
		errs = verr.Fields
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Debug("contact submission abandoned", "error", err)
		return
	default:
		slog.Error("contact submission failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := form.View(errs)

	if !render.IsHTMX(r) {
		out, err := p.renderPage(r, "contact", p.contactData(view))
		if err != nil {
			slog.Error("render page failed", "page", "contact", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		writeHTML(w, r, status, out)
		return
	}

	// HTMX only swaps 2xx responses by default, so field errors go out
	// as 200 with the errors rendered inline.
	p.partial(w, r, http.StatusOK, "contact_form", view)
}

// ContactStatus returns the idle status slot. The success notice polls it
// once ResetAfter has elapsed, which hides the notice.
func (p *Public) ContactStatus(w http.ResponseWriter, r *http.Request) {
	p.partial(w, r, http.StatusOK, "contact_status", contact.View{Status: contact.StatusIdle})
}
