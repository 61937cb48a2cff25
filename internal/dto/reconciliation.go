package dto

// MarkExceptionRequest carries an exception classification for an unmatched item.
type MarkExceptionRequest struct {
	Type   string `json:"type" binding:"required"`
	Detail string `json:"detail" binding:"required"`
}

// MarkMatchedRequest optionally names the external record the item was matched with.
type MarkMatchedRequest struct {
	MatchedWith string `json:"matchedWith"`
}

// ListReconciliationParams selects which reconciliation items to return.
type ListReconciliationParams struct {
	Filter string `form:"filter" binding:"omitempty,oneof=all matched unmatched"`
}
