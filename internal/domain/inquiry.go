package domain

import (
	"fmt"

	"treasury_go/pkg/price"
)

// InquiryState is the lifecycle state of a customer inquiry.
type InquiryState string

const (
	InquiryReceived         InquiryState = "RECEIVED"
	InquiryQuoted           InquiryState = "QUOTED"
	InquiryDone             InquiryState = "DONE"
	InquiryRejected         InquiryState = "REJECTED"
	InquiryCustomerRejected InquiryState = "CUSTOMER_REJECTED"
)

func ParseInquiryState(s string) (InquiryState, error) {
	switch st := InquiryState(s); st {
	case InquiryReceived, InquiryQuoted, InquiryDone, InquiryRejected, InquiryCustomerRejected:
		return st, nil
	default:
		return "", fmt.Errorf("unknown inquiry state %q", s)
	}
}

// Inquiry is a customer request for a quote. Key is the inquiry id.
type Inquiry struct {
	ID       string       `json:"id"`
	Product  Product      `json:"product"`
	Side     Side         `json:"side"`
	Quantity int64        `json:"quantity"`
	Price    price.Value  `json:"price"`
	State    InquiryState `json:"state"`
}

func (i Inquiry) Key() string {
	return i.ID
}

// WithQuote returns a copy priced at p in state QUOTED.
func (i Inquiry) WithQuote(p price.Value) Inquiry {
	i.Price = p
	i.State = InquiryQuoted
	return i
}

// WithState returns a copy in the given state.
func (i Inquiry) WithState(s InquiryState) Inquiry {
	i.State = s
	return i
}
