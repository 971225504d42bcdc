package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"recycling-api/internal/models"
)

// PointRecord is one row of the import file: name,latitude,longitude,fill_level,waste_type
type PointRecord struct {
	Name       string
	Latitude   float64
	Longitude  float64
	FillLevel  int
	WasteType  string
	ImportedAt time.Time
}

func parseCSV(r io.Reader, importedAt time.Time) ([]PointRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow trailing optional columns to be omitted
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []PointRecord
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 3 {
			return nil, fmt.Errorf("line %d: invalid record length: %d, expected at least 3 columns", line, len(record))
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			return nil, fmt.Errorf("line %d: name is required", line)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid latitude: %s", line, record[1])
		}

		lon, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid longitude: %s", line, record[2])
		}

		point := PointRecord{
			Name:       name,
			Latitude:   lat,
			Longitude:  lon,
			WasteType:  models.DefaultWasteType,
			ImportedAt: importedAt,
		}

		if len(record) > 3 && strings.TrimSpace(record[3]) != "" {
			fill, err := strconv.Atoi(strings.TrimSpace(record[3]))
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid fill level: %s", line, record[3])
			}
			point.FillLevel = fill
		}
		if len(record) > 4 && strings.TrimSpace(record[4]) != "" {
			point.WasteType = strings.TrimSpace(record[4])
		}

		records = append(records, point)
	}

	return records, nil
}
