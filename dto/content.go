package dto

import (
	"unitu-block/block"
)

// BlockContentDTO is the rendered block as served to host pages.
// Body is template-escaped markup; Footer is the raw powered-by line.
type BlockContentDTO struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Footer string `json:"footer"`
}

// NewBlockContentDTO constructs BlockContentDTO from block.Content
func NewBlockContentDTO(c *block.Content) BlockContentDTO {
	return BlockContentDTO{
		Title:  c.Title,
		Body:   c.Body,
		Footer: c.Footer,
	}
}
