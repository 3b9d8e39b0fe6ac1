// Package document builds the PDF estimate that is attached to proposal
// emails.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// BlockKind identifies a layout element.
type BlockKind string

const (
	BlockTitle     BlockKind = "title"
	BlockLine      BlockKind = "line"
	BlockDivider   BlockKind = "divider"
	BlockHeading   BlockKind = "heading"
	BlockLabel     BlockKind = "label"
	BlockBullet    BlockKind = "bullet"
	BlockHighlight BlockKind = "highlight"
	BlockFootnote  BlockKind = "footnote"
)

// Block is one layout element in the order it was added.
type Block struct {
	Kind BlockKind
	Text string
}

// ErrFinished is returned when a builder is used after Finish.
var ErrFinished = errors.New("document already finished")

// Builder accumulates layout blocks and produces the PDF bytes on Finish.
// It is not safe for concurrent use.
type Builder struct {
	title    string
	author   string
	created  time.Time
	blocks   []Block
	finished bool
}

func NewBuilder(title, author string, created time.Time) *Builder {
	return &Builder{title: title, author: author, created: created}
}

func (b *Builder) add(kind BlockKind, text string) *Builder {
	if !b.finished {
		b.blocks = append(b.blocks, Block{Kind: kind, Text: text})
	}
	return b
}

func (b *Builder) Title(text string) *Builder     { return b.add(BlockTitle, text) }
func (b *Builder) Line(text string) *Builder      { return b.add(BlockLine, text) }
func (b *Builder) Divider() *Builder              { return b.add(BlockDivider, "") }
func (b *Builder) Heading(text string) *Builder   { return b.add(BlockHeading, text) }
func (b *Builder) Label(text string) *Builder     { return b.add(BlockLabel, text) }
func (b *Builder) Highlight(text string) *Builder { return b.add(BlockHighlight, text) }
func (b *Builder) Footnote(text string) *Builder  { return b.add(BlockFootnote, text) }

// Bullets adds one bullet block per item, preserving order.
func (b *Builder) Bullets(items []string) *Builder {
	for _, it := range items {
		b.add(BlockBullet, it)
	}
	return b
}

// Blocks returns a copy of the accumulated layout.
func (b *Builder) Blocks() []Block {
	out := make([]Block, len(b.blocks))
	copy(out, b.blocks)
	return out
}

// Finish lays out every block on A4 pages and returns the complete PDF.
// The builder cannot be reused afterwards.
func (b *Builder) Finish() ([]byte, error) {
	if b.finished {
		return nil, ErrFinished
	}
	b.finished = true

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetTitle(b.title, true)
	pdf.SetAuthor(b.author, true)
	pdf.SetCreationDate(b.created)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageW - left - right

	for _, blk := range b.blocks {
		switch blk.Kind {
		case BlockTitle:
			pdf.SetFont("Helvetica", "B", 20)
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(width, 12, tr(blk.Text), "", 1, "C", false, 0, "")
			pdf.Ln(6)
		case BlockLine:
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(width, 6, tr(blk.Text), "", 1, "L", false, 0, "")
		case BlockDivider:
			pdf.Ln(4)
			pdf.SetDrawColor(200, 200, 200)
			pdf.SetLineWidth(0.4)
			y := pdf.GetY()
			pdf.Line(left, y, pageW-right, y)
			pdf.Ln(6)
		case BlockHeading:
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "BU", 14)
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(width, 8, tr(blk.Text), "", 1, "L", false, 0, "")
			pdf.Ln(2)
		case BlockLabel:
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(width, 6, tr(blk.Text), "", 1, "L", false, 0, "")
		case BlockBullet:
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(8, 6, tr("•"), "", 0, "R", false, 0, "")
			pdf.MultiCell(width-8, 6, tr(" "+blk.Text), "", "L", false)
		case BlockHighlight:
			pdf.Ln(1)
			pdf.SetFont("Helvetica", "B", 16)
			pdf.SetTextColor(0xB3, 0x40, 0x2A)
			pdf.CellFormat(width, 10, tr(blk.Text), "", 1, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		case BlockFootnote:
			pdf.Ln(10)
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(110, 110, 110)
			pdf.MultiCell(width, 5, tr(blk.Text), "", "L", false)
		default:
			return nil, fmt.Errorf("unknown block kind %q", blk.Kind)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
