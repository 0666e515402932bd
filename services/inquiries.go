package services

import (
	"errors"
	"fmt"
	"sync"

	"inquiry-desk/models"
)

// ErrIndexOutOfRange is returned by Delete for an index outside the collection.
var ErrIndexOutOfRange = errors.New("inquiry index out of range")

// InquiryCollection is the insertion-ordered list of completed inquiries.
// It only grows by Add and shrinks by Delete or DeleteAll; it is never
// reordered. Safe for concurrent use.
type InquiryCollection struct {
	mu        sync.RWMutex
	inquiries []models.Inquiry
}

// NewInquiryCollection returns a collection seeded with inquiries (may be nil).
func NewInquiryCollection(inquiries []models.Inquiry) *InquiryCollection {
	return &InquiryCollection{inquiries: cloneAll(inquiries)}
}

func cloneAll(inquiries []models.Inquiry) []models.Inquiry {
	if inquiries == nil {
		return nil
	}
	out := make([]models.Inquiry, len(inquiries))
	for i, inq := range inquiries {
		out[i] = models.CloneInquiry(inq)
	}
	return out
}

// Add appends an inquiry.
func (c *InquiryCollection) Add(inq models.Inquiry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inquiries = append(c.inquiries, models.CloneInquiry(inq))
}

// Delete removes the inquiry at index.
func (c *InquiryCollection) Delete(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.inquiries) {
		return fmt.Errorf("delete %d of %d: %w", index, len(c.inquiries), ErrIndexOutOfRange)
	}
	next := make([]models.Inquiry, 0, len(c.inquiries)-1)
	next = append(next, c.inquiries[:index]...)
	c.inquiries = append(next, c.inquiries[index+1:]...)
	return nil
}

// DeleteAll empties the collection.
func (c *InquiryCollection) DeleteAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inquiries = nil
}

// All returns a deep copy of the inquiries in insertion order.
func (c *InquiryCollection) All() []models.Inquiry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.inquiries)
}

// Replace swaps the whole content, used when restoring persisted state.
func (c *InquiryCollection) Replace(inquiries []models.Inquiry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inquiries = cloneAll(inquiries)
}

func (c *InquiryCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.inquiries)
}
