package bot

import (
	"fmt"
	"html"
	"strings"

	"taxiservice/pkg/models"
)

const (
	welcomeText = "🛠 <b>Fleet admin</b>\n\n" +
		"/stats - record counts\n" +
		"/drivers [username] - search drivers\n" +
		"/cars [model] - search cars\n" +
		"/manufacturers [name] - search manufacturers"
	errorText = "⚠️ Something went wrong, try again later."
	emptyText = "📭 Nothing found."
)

func StatsText(s *models.Stats) string {
	return fmt.Sprintf("📊 <b>Statistics</b>\n\n👥 Drivers: %d\n🚗 Cars: %d\n🏭 Manufacturers: %d",
		s.Drivers, s.Cars, s.Manufacturers)
}

func DriversText(list *models.DriverList) string {
	if len(list.Items) == 0 {
		return emptyText
	}
	var b strings.Builder
	writeHeader(&b, "👥 Drivers", len(list.Items), list.Count)
	for _, d := range list.Items {
		fmt.Fprintf(&b, "#%d %s (%s) 🪪 %s\n",
			d.ID,
			html.EscapeString(d.Account.Username),
			html.EscapeString(d.Account.FullName()),
			html.EscapeString(d.LicenseNumber),
		)
	}
	return b.String()
}

func CarsText(list *models.CarList) string {
	if len(list.Items) == 0 {
		return emptyText
	}
	var b strings.Builder
	writeHeader(&b, "🚗 Cars", len(list.Items), list.Count)
	for _, c := range list.Items {
		manufacturer := ""
		if c.Manufacturer != nil {
			manufacturer = " (" + html.EscapeString(c.Manufacturer.Name) + ")"
		}
		fmt.Fprintf(&b, "#%d %s%s 👥 %d\n", c.ID, html.EscapeString(c.Model), manufacturer, len(c.Drivers))
	}
	return b.String()
}

func ManufacturersText(list *models.ManufacturerList) string {
	if len(list.Items) == 0 {
		return emptyText
	}
	var b strings.Builder
	writeHeader(&b, "🏭 Manufacturers", len(list.Items), list.Count)
	for _, m := range list.Items {
		fmt.Fprintf(&b, "#%d %s, %s\n", m.ID, html.EscapeString(m.Name), html.EscapeString(m.Country))
	}
	return b.String()
}

func writeHeader(b *strings.Builder, title string, shown, total int) {
	fmt.Fprintf(b, "<b>%s</b>", title)
	if shown < total {
		fmt.Fprintf(b, " (%d of %d)", shown, total)
	} else {
		fmt.Fprintf(b, " (%d)", total)
	}
	b.WriteString("\n\n")
}
