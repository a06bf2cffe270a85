package cache

// Mutation names a committed document change.
type Mutation string

const (
	QuoteCreated      Mutation = "quote.created"
	QuoteUpdated      Mutation = "quote.updated"
	QuoteSent         Mutation = "quote.sent"
	QuoteSigned       Mutation = "quote.signed"
	QuoteDeclined     Mutation = "quote.declined"
	InvoiceCreated    Mutation = "invoice.created"
	InvoiceUpdated    Mutation = "invoice.updated"
	InvoiceSent       Mutation = "invoice.sent"
	InvoiceCancelled  Mutation = "invoice.cancelled"
	InvoicePaid       Mutation = "invoice.paid"
	InvoicePayoutPaid Mutation = "invoice.payout_paid"
	PayoutCreated     Mutation = "payout.created"
	PayoutStatus      Mutation = "payout.status"
	PayoutRefunded    Mutation = "payout.refunded"
)

// Scope is a family of cached reads.
type Scope string

const (
	ScopeQuote           Scope = "quote"
	ScopeInvoice         Scope = "invoice"
	ScopeInvoiceByQuote  Scope = "invoice_by_quote"
	ScopePayout          Scope = "payout"
	ScopePayoutByInvoice Scope = "payout_by_invoice"
)

// InvalidationScopes is the single owner of "which cached reads does this
// mutation make stale". Use cases call Keys once per committed mutation.
var InvalidationScopes = map[Mutation][]Scope{
	QuoteCreated:      {ScopeQuote},
	QuoteUpdated:      {ScopeQuote},
	QuoteSent:         {ScopeQuote},
	QuoteSigned:       {ScopeQuote},
	QuoteDeclined:     {ScopeQuote},
	InvoiceCreated:    {ScopeInvoice, ScopeInvoiceByQuote},
	InvoiceUpdated:    {ScopeInvoice, ScopeInvoiceByQuote},
	InvoiceSent:       {ScopeInvoice, ScopeInvoiceByQuote},
	InvoiceCancelled:  {ScopeInvoice, ScopeInvoiceByQuote},
	InvoicePaid:       {ScopeInvoice, ScopeInvoiceByQuote},
	InvoicePayoutPaid: {ScopeInvoice, ScopeInvoiceByQuote},
	PayoutCreated:     {ScopePayout, ScopePayoutByInvoice},
	PayoutStatus:      {ScopePayout, ScopePayoutByInvoice},
	PayoutRefunded:    {ScopePayout, ScopePayoutByInvoice},
}

// Refs identifies the documents touched by a mutation.
type Refs struct {
	QuoteID   string
	InvoiceID string
	PayoutID  string
}

func QuoteKey(id string) string           { return "quote:" + id }
func InvoiceKey(id string) string         { return "invoice:" + id }
func InvoiceByQuoteKey(id string) string  { return "invoice:quote:" + id }
func PayoutKey(id string) string          { return "payout:" + id }
func PayoutByInvoiceKey(id string) string { return "payout:invoice:" + id }

// Keys lists the cache keys m invalidates. Scopes whose ref is empty are
// skipped.
func Keys(m Mutation, r Refs) []string {
	var keys []string
	for _, s := range InvalidationScopes[m] {
		switch s {
		case ScopeQuote:
			keys = appendKey(keys, r.QuoteID, QuoteKey)
		case ScopeInvoice:
			keys = appendKey(keys, r.InvoiceID, InvoiceKey)
		case ScopeInvoiceByQuote:
			keys = appendKey(keys, r.QuoteID, InvoiceByQuoteKey)
		case ScopePayout:
			keys = appendKey(keys, r.PayoutID, PayoutKey)
		case ScopePayoutByInvoice:
			keys = appendKey(keys, r.InvoiceID, PayoutByInvoiceKey)
		}
	}
	return keys
}

func appendKey(keys []string, id string, key func(string) string) []string {
	if id == "" {
		return keys
	}
	return append(keys, key(id))
}

// ChargeKey is the charge-ledger key of an invoice.
func ChargeKey(invoiceID string) string {
	return "charge:invoice:" + invoiceID
}

// RefundKey serializes refund requests against one payout.
func RefundKey(payoutID string) string {
	return "refund:payout:" + payoutID
}
