package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/template"

	"github.com/jengzang/route-finder/internal/models"
)

// ContentType is the MIME type of a KML document
const ContentType = "application/vnd.google-earth.kml+xml"

const kmlDocument = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document>
<Style id="yellowPoly">
<LineStyle>
<color>Af00ffff</color>
<width>6</width>
</LineStyle>
<PolyStyle>
<color>7f00ff00</color>
</PolyStyle>
</Style>
<Placemark><styleUrl>#yellowPoly</styleUrl>
<LineString>
<Description>Speed in MPH, not altitude.</Description>
<extrude>1</extrude>
<tesselate>1</tesselate>
<altitudeMode>absolute</altitudeMode>
<coordinates>
{{range .Path}}{{coord .}}
{{end}}</coordinates>
</LineString>
</Placemark>
{{range .Stops}}{{template "pin" pin "Red PIN for A Stop" "ff0000ff" "http://maps.google.com/mapfiles/kml/paddle/1.png" .}}{{end -}}
{{range .LeftTurns}}{{template "pin" pin "Green PIN for A Left Turn" "ff00ffff" "http://maps.google.com/mapfiles/ms/icons/green-dot.png" .}}{{end -}}
</Document>
</kml>
`

const kmlPin = `<Placemark>
<description>{{.Description}}</description>
<Style id="normalPlacemark">
<IconStyle>
<color>{{.Color}}</color>
<Icon>
<href>{{.Icon}}</href>
</Icon>
</IconStyle>
</Style>
<Point>
<coordinates>{{coord .At}}</coordinates>
</Point>
</Placemark>
`

type pinData struct {
	Description string
	Color       string
	Icon        string
	At          models.Coordinate
}

var tmpl = template.Must(template.Must(template.New("kml").Funcs(template.FuncMap{
	"coord": formatCoordinate,
	"pin": func(desc, color, icon string, at models.Coordinate) pinData {
		return pinData{Description: desc, Color: color, Icon: icon, At: at}
	},
}).Parse(kmlDocument)).New("pin").Parse(kmlPin))

// Document is everything the formatter needs: the path and its events, in
// signed decimal degrees
type Document struct {
	Path      []models.Coordinate
	Stops     []models.Coordinate
	LeftTurns []models.Coordinate
}

// FromRoute builds a Document from a selected route, converting its raw
// coordinates to decimal degrees
func FromRoute(route models.ScoredTrip) Document {
	return Document{
		Path:      models.Degrees(route.Trip.Path()),
		Stops:     models.Degrees(route.Stops),
		LeftTurns: models.Degrees(route.LeftTurns),
	}
}

// WriteKML renders doc as a KML document. Path entries with a NaN
// coordinate are skipped.
func WriteKML(w io.Writer, doc Document) error {
	path := make([]models.Coordinate, 0, len(doc.Path))
	for _, c := range doc.Path {
		if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
			continue
		}
		path = append(path, c)
	}
	doc.Path = path

	if err := tmpl.ExecuteTemplate(w, "kml", doc); err != nil {
		return fmt.Errorf("failed to render kml: %w", err)
	}
	return nil
}

// formatCoordinate writes lon,lat,0 as KML expects
func formatCoordinate(c models.Coordinate) string {
	return strconv.FormatFloat(c.Longitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Latitude, 'f', -1, 64) + ",0"
}
