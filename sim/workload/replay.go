package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tellersim/tellersim/sim"
)

// CSV column headers for arrival files.
var arrivalColumns = []string{"job_id", "arrival_time", "service_demand"}

// LoadArrivalsCSV reads an arrival file with a header row
// job_id,arrival_time,service_demand (times in ticks).
func LoadArrivalsCSV(path string) ([]sim.Arrival, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening arrivals file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Warnf("closing arrivals file %s: %v", path, closeErr)
		}
	}()
	return ParseArrivalsCSV(file)
}

// ParseArrivalsCSV parses arrival rows from r. Ordering and uniqueness are
// checked by the simulator when the arrivals are replayed.
func ParseArrivalsCSV(r io.Reader) ([]sim.Arrival, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(arrivalColumns)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading arrivals header: %w", err)
	}
	for i, col := range arrivalColumns {
		if strings.TrimSpace(header[i]) != col {
			return nil, fmt.Errorf("arrivals header column %d: got %q, want %q", i, header[i], col)
		}
	}

	var arrivals []sim.Arrival
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading arrivals row %d: %w", line, err)
		}
		a, err := parseArrivalRow(row)
		if err != nil {
			return nil, fmt.Errorf("arrivals row %d: %w", line, err)
		}
		arrivals = append(arrivals, a)
	}
	return arrivals, nil
}

func parseArrivalRow(row []string) (sim.Arrival, error) {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return sim.Arrival{}, fmt.Errorf("parsing job_id: %w", err)
	}
	arrival, err := strconv.ParseInt(row[1], 10, 64)
	if err != nil {
		return sim.Arrival{}, fmt.Errorf("parsing arrival_time: %w", err)
	}
	demand, err := strconv.ParseInt(row[2], 10, 64)
	if err != nil {
		return sim.Arrival{}, fmt.Errorf("parsing service_demand: %w", err)
	}
	return sim.Arrival{JobID: id, ArrivalTime: arrival, ServiceDemand: demand}, nil
}

// WriteArrivalsCSV writes arrivals in the format read by ParseArrivalsCSV,
// so a generated workload can be replayed later.
func WriteArrivalsCSV(w io.Writer, arrivals []sim.Arrival) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(arrivalColumns); err != nil {
		return fmt.Errorf("writing arrivals header: %w", err)
	}
	for _, a := range arrivals {
		row := []string{
			strconv.Itoa(a.JobID),
			strconv.FormatInt(a.ArrivalTime, 10),
			strconv.FormatInt(a.ServiceDemand, 10),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing arrival %d: %w", a.JobID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
