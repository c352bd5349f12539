package services

import (
	"bytes"
	"strings"
	"testing"

	"subite-backend/internal/scope"
)

func TestManifestServiceGenerate(t *testing.T) {
	loader := func(p scope.Predicate) (manifestData, error) {
		return manifestData{
			RouteID:     3,
			CompanyName: "Transportes Andinos",
			Date:        "2026-09-01",
			Status:      "PENDING",
			VehicleName: "Shuttle",
			Plate:       "ABC-123",
			DriverName:  "Driver",
			DriverEmail: "driver@subite.com",
		}, nil
	}

	svc := ManifestService{Loader: loader}

	pdf, filename, err := svc.Generate(scope.Predicate{CompanyID: 7}.WithID(3))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("Generate returned empty document")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
	if filename != "TRIPSHEET_3_2026-09-01.pdf" {
		t.Fatalf("filename = %q", filename)
	}
}

func TestManifestFilenameSanitized(t *testing.T) {
	loader := func(p scope.Predicate) (manifestData, error) {
		return manifestData{RouteID: 9, Date: "2026/09/01 10:00"}, nil
	}

	svc := ManifestService{Loader: loader}
	_, filename, err := svc.Generate(scope.Predicate{CompanyID: 7}.WithID(9))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if strings.ContainsAny(filename, "/\\: ") {
		t.Fatalf("filename not sanitized: %q", filename)
	}
}
