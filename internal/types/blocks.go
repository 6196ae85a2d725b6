// Package types provides type definitions for structured data used throughout the job-profiler system.
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Block types produced by the upstream ingestion step.
const (
	BlockParagraph = "paragraph"
	BlockHeading   = "heading"
	BlockListItem  = "list_item"
	BlockTable     = "table"
)

// BlockMetadata carries optional structure for list and table blocks.
// Table rows are ordered and need at least two cells to participate in
// layout matching.
type BlockMetadata struct {
	Marker  string     `json:"marker,omitempty"`
	Ordered bool       `json:"ordered,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

// ContentBlock is one semantic segment of a job posting, produced by the
// external ingestion collaborator. Blocks are treated as immutable input.
type ContentBlock struct {
	Type     string         `json:"type" validate:"required,oneof=paragraph heading list_item table"`
	Text     string         `json:"text"`
	Level    int            `json:"level,omitempty" validate:"gte=0"`
	Metadata *BlockMetadata `json:"metadata,omitempty"`
}

// TableRows returns the block's table rows that have at least two cells.
func (b ContentBlock) TableRows() [][]string {
	if b.Type != BlockTable || b.Metadata == nil {
		return nil
	}
	rows := make([][]string, 0, len(b.Metadata.Rows))
	for _, row := range b.Metadata.Rows {
		if len(row) >= 2 {
			rows = append(rows, row)
		}
	}
	return rows
}

var validate = validator.New()

// ValidateBlocks checks that every block has a known type and sane metadata.
func ValidateBlocks(blocks []ContentBlock) error {
	for i, b := range blocks {
		if err := validate.Struct(b); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	return nil
}
