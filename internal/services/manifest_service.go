package services

import (
	"bytes"
	"fmt"
	"strings"

	"subite-backend/internal/logger"
	"subite-backend/internal/repositories"
	"subite-backend/internal/scope"

	"github.com/phpdave11/gofpdf"
)

// ManifestService renders the printable trip sheet for a daily route.
type ManifestService struct {
	RoutesRepo    repositories.RoutesRepository
	CompaniesRepo repositories.CompaniesRepository
	Loader        func(scope.Predicate) (manifestData, error)
}

type manifestData struct {
	RouteID     int64
	CompanyName string
	Date        string
	Status      string
	VehicleName string
	Plate       string
	DriverName  string
	DriverEmail string
}

// Generate loads the route under the caller's visibility predicate and
// builds the PDF. Routes outside the predicate surface as not found.
func (s ManifestService) Generate(p scope.Predicate) ([]byte, string, error) {
	data, err := s.load(p)
	if err != nil {
		return nil, "", err
	}
	zl := logger.Get()
	zl.Info().Int64("routeId", data.RouteID).Msg("route manifest generated")
	return buildManifestPDF(data)
}

func (s ManifestService) load(p scope.Predicate) (manifestData, error) {
	if s.Loader != nil {
		return s.Loader(p)
	}

	route, err := s.RoutesRepo.Get(p)
	if err != nil {
		return manifestData{}, err
	}

	out := manifestData{
		RouteID: route.ID,
		Date:    route.Date,
		Status:  route.Status,
	}
	if route.Vehicle != nil {
		out.VehicleName = route.Vehicle.Name
		out.Plate = route.Vehicle.Plate
	}
	if route.Driver != nil {
		out.DriverName = route.Driver.Name
		out.DriverEmail = route.Driver.Email
	}
	if company, err := s.CompaniesRepo.GetByID(p.CompanyID); err == nil {
		out.CompanyName = company.Name
	}
	return out, nil
}

func buildManifestPDF(d manifestData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Sheet", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP SHEET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Route    : #%d", d.RouteID),
		fmt.Sprintf("Company  : %s", safe(d.CompanyName)),
		fmt.Sprintf("Date     : %s", safe(d.Date)),
		fmt.Sprintf("Status   : %s", safe(d.Status)),
		fmt.Sprintf("Vehicle  : %s (%s)", safe(d.VehicleName), safe(d.Plate)),
		fmt.Sprintf("Driver   : %s <%s>", safe(d.DriverName), safe(d.DriverEmail)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Keep this sheet in the vehicle for the duration of the trip.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TRIPSHEET_%d_%s.pdf", d.RouteID, safeFilenamePart(d.Date))
	return buf.Bytes(), filename, nil
}

func safe(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	out := replacer.Replace(s)
	if out == "" {
		return "trip"
	}
	return out
}
