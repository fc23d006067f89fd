package view

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

const (
	NoOrdersMessage = "No orders yet."
	NoMenuMessage   = "The menu is empty."
)

// RenderMenu writes the catalog as a table, in fetch order.
func RenderMenu(w io.Writer, items []models.CatalogItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, NoMenuMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", it.ID, it.Name, utils.FormatBaht(it.Price))
	}
	return tw.Flush()
}

// RenderOrders writes the admin orders table.
func RenderOrders(w io.Writer, orders []models.AdminOrder) error {
	if len(orders) == 0 {
		_, err := fmt.Fprintln(w, NoOrdersMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tCUSTOMER\tPHONE\tTOTAL\tSTATUS\tCREATED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			o.Label(),
			o.CustomerName,
			o.CustomerPhone,
			utils.FormatBaht(o.TotalPrice),
			o.Status,
			o.CreatedAt.Local().Format(time.DateTime),
		)
	}
	return tw.Flush()
}
