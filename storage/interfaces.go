package storage

import (
	"context"

	"inquiry-desk/models"
)

// Keys under which application state is persisted.
const (
	KeyNewInquiry = "newInquiry"
	KeyInquiries  = "inquiries"
	KeyCountries  = "countries"
)

// StateStore is the key-value persistence capability for session, collection
// and directory snapshots.
type StateStore interface {
	// Load returns ok=false when nothing was stored under key.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// InquiryWriter is the interface any export backend must satisfy.
type InquiryWriter interface {
	Write(inquiries []models.Inquiry) error
	Close() error
}
