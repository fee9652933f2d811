// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Category is one card of the landing page carousel and its chip in the
// label strip. Position is the card's identifier in the rotation (0-4).
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ImageURL  string    `json:"image_url"`
	ImageAlt  string    `json:"image_alt"`
	Gradient  string    `json:"gradient"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultCategories returns the built-in carousel deck. It is used to seed
// the database and whenever no database is configured.
func DefaultCategories() []Category {
	const q = "?q=80&w=1200&auto=format&fit=crop"
	return []Category{
		{Name: "Technology", Slug: "technology", ImageAlt: "Technology", Gradient: "gradient-card-1", Position: 0,
			ImageURL: "https://images.unsplash.com/photo-1518779578993-ec3579fee39f" + q},
		{Name: "Design", Slug: "design", ImageAlt: "Design", Gradient: "gradient-card-2", Position: 1,
			ImageURL: "https://images.unsplash.com/photo-1520607162513-77705c0f0d4a" + q},
		{Name: "Product", Slug: "product", ImageAlt: "Product", Gradient: "gradient-card-3", Position: 2,
			ImageURL: "https://images.unsplash.com/photo-1498050108023-c5249f4df085" + q},
		{Name: "Culture", Slug: "culture", ImageAlt: "Culture", Gradient: "gradient-card-4", Position: 3,
			ImageURL: "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee" + q},
		{Name: "Tutorials", Slug: "tutorials", ImageAlt: "Tutorials", Gradient: "gradient-card-5", Position: 4,
			ImageURL: "https://images.unsplash.com/photo-1513258496099-48168024aec0" + q},
	}
}
