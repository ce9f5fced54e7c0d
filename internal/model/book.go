package model

import (
	"strings"

	"github.com/rigelk42/fast-api/pkg/apierror"
)

// Book is a row in the id-keyed in-memory books API.
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Rating        int    `json:"rating"`
	PublishedDate int    `json:"published_date"`
}

type BookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Rating        int    `json:"rating"`
	PublishedDate int    `json:"published_date"`
}

func (r BookRequest) Validate() error {
	if len(strings.TrimSpace(r.Title)) < 3 {
		return apierror.Validation("title must be at least 3 characters", "title")
	}
	if len(strings.TrimSpace(r.Author)) < 1 {
		return apierror.Validation("author is required", "author")
	}
	if l := len(strings.TrimSpace(r.Description)); l < 1 || l > 100 {
		return apierror.Validation("description must be between 1 and 100 characters", "description")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return apierror.Validation("rating must be between 1 and 5", "rating")
	}
	if r.PublishedDate < 2000 || r.PublishedDate > 2030 {
		return apierror.Validation("published_date must be between 2000 and 2030", "published_date")
	}
	return nil
}

// CatalogBook is an entry in the title-keyed catalog API. Titles are compared
// case-insensitively.
type CatalogBook struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

func (b CatalogBook) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return apierror.Validation("title is required", "title")
	}
	if strings.TrimSpace(b.Author) == "" {
		return apierror.Validation("author is required", "author")
	}
	if strings.TrimSpace(b.Category) == "" {
		return apierror.Validation("category is required", "category")
	}
	return nil
}
