package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/renato0307/productsearch/internal/domain"
	"github.com/renato0307/productsearch/internal/theme"
)

// Output formats accepted by the list commands
const (
	FormatJSON  = "json"
	FormatTable = "table"
	FormatText  = "text"
)

// productJSON is the JSON shape of a product
type productJSON struct {
	Category    string            `json:"product_category"`
	Description string            `json:"description"`
	DisplayName string            `json:"display_name"`
	ID          string            `json:"id"`
	Labels      map[string]string `json:"labels"`
	Name        string            `json:"name"`
}

// productSetJSON is the JSON shape of a product set
type productSetJSON struct {
	DisplayName string `json:"display_name"`
	ID          string `json:"id"`
	IndexTime   string `json:"index_time"`
	Name        string `json:"name"`
}

// printProduct writes the block shown by getProduct and list commands
func printProduct(w io.Writer, p domain.Product) {
	fmt.Fprintf(w, "Product name: %s\n", p.Name)
	fmt.Fprintf(w, "Product id: %s\n", p.ID())
	fmt.Fprintf(w, "Product display name: %s\n", p.DisplayName)
	fmt.Fprintf(w, "Product description: %s\n", p.Description)
	fmt.Fprintf(w, "Product category: %s\n", p.ProductCategory)
	fmt.Fprintf(w, "Product labels: %s\n", formatLabels(p.Labels))
}

// printUpdatedProduct writes the block shown after updateProductLabels
func printUpdatedProduct(w io.Writer, p domain.Product) {
	fmt.Fprintf(w, "Product name: %s\n", p.Name)
	fmt.Fprintf(w, "Product display name: %s\n", p.DisplayName)
	fmt.Fprintf(w, "Product description: %s\n", p.Description)
	fmt.Fprintf(w, "Product category: %s\n", p.ProductCategory)
	for _, l := range p.Labels {
		fmt.Fprintf(w, "Product Labels: %s: %s\n", l.Key, l.Value)
	}
}

func printProductSet(w io.Writer, s domain.ProductSet) {
	fmt.Fprintf(w, "Product Set name: %s\n", s.Name)
	fmt.Fprintf(w, "Product Set id: %s\n", s.ID())
	fmt.Fprintf(w, "Product Set display name: %s\n", s.DisplayName)
	fmt.Fprintf(w, "Product Set index time: %s\n", s.IndexTime.UTC().Format(time.RFC3339))
}

// formatLabels renders labels as "k1: v1, k2: v2"
func formatLabels(labels []domain.KeyValue) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = l.Key + ": " + l.Value
	}
	return strings.Join(parts, ", ")
}

func writeProducts(w io.Writer, format string, products []domain.Product) error {
	switch format {
	case FormatJSON:
		out := make([]productJSON, len(products))
		for i, p := range products {
			labels := make(map[string]string, len(p.Labels))
			for _, l := range p.Labels {
				labels[l.Key] = l.Value
			}
			out[i] = productJSON{
				Category:    p.ProductCategory,
				Description: p.Description,
				DisplayName: p.DisplayName,
				ID:          p.ID(),
				Labels:      labels,
				Name:        p.Name,
			}
		}
		return writeJSON(w, out)
	case FormatTable:
		rows := make([][]string, len(products))
		for i, p := range products {
			rows[i] = []string{p.ID(), p.DisplayName, p.ProductCategory, formatLabels(p.Labels)}
		}
		return writeTable(w, []string{"ID", "DISPLAY NAME", "CATEGORY", "LABELS"}, rows)
	default:
		for i, p := range products {
			if i > 0 {
				fmt.Fprintln(w)
			}
			printProduct(w, p)
		}
		return nil
	}
}

func writeProductSets(w io.Writer, format string, sets []domain.ProductSet) error {
	switch format {
	case FormatJSON:
		out := make([]productSetJSON, len(sets))
		for i, s := range sets {
			out[i] = productSetJSON{
				DisplayName: s.DisplayName,
				ID:          s.ID(),
				IndexTime:   s.IndexTime.UTC().Format(time.RFC3339),
				Name:        s.Name,
			}
		}
		return writeJSON(w, out)
	case FormatTable:
		rows := make([][]string, len(sets))
		for i, s := range sets {
			rows[i] = []string{s.ID(), s.DisplayName, s.IndexTime.UTC().Format(time.RFC3339)}
		}
		return writeTable(w, []string{"ID", "DISPLAY NAME", "INDEX TIME"}, rows)
	default:
		for i, s := range sets {
			if i > 0 {
				fmt.Fprintln(w)
			}
			printProductSet(w, s)
		}
		return nil
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(theme.TableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.TableHeaderStyle
			case col == 0:
				return theme.TableIDStyle
			default:
				return theme.TableCellStyle
			}
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
