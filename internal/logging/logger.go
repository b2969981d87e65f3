package logging

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"fjspga/internal/evolution"
)

// Logger writes per-generation records as CSV and JSON lines
type Logger struct {
	csvPath     string
	jsonPath    string
	runID       string
	csvFile     *os.File
	csvWriter   *gocsv.SafeCSVWriter
	jsonFile    *os.File
	wroteHeader bool
	initialized bool
	log         *zap.Logger
}

// jsonRecord tags a record with its run
type jsonRecord struct {
	RunID string `json:"run_id,omitempty"`
	evolution.Record
}

// NewLogger creates a new logger
func NewLogger(csvPath, jsonPath string, log *zap.Logger) (*Logger, error) {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Logger{
		csvPath:  csvPath,
		jsonPath: jsonPath,
		log:      log,
	}

	// Ensure directories exist
	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}

	return l, nil
}

// Init creates the log files
func (l *Logger) Init(runID string) error {
	var err error

	l.csvFile, err = os.Create(l.csvPath)
	if err != nil {
		return err
	}
	l.csvWriter = gocsv.NewSafeCSVWriter(csv.NewWriter(l.csvFile))

	l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		l.csvFile.Close()
		return err
	}

	l.runID = runID
	l.initialized = true
	return nil
}

// Close flushes and closes all log files
func (l *Logger) Close() {
	if l.csvWriter != nil {
		l.csvWriter.Flush()
	}
	if l.csvFile != nil {
		l.csvFile.Close()
	}
	if l.jsonFile != nil {
		l.jsonFile.Close()
	}
}

// LogGeneration appends one record to both files
func (l *Logger) LogGeneration(rec evolution.Record) {
	if !l.initialized {
		return
	}

	rows := []evolution.Record{rec}
	var err error
	if l.wroteHeader {
		err = gocsv.MarshalCSVWithoutHeaders(&rows, l.csvWriter)
	} else {
		err = gocsv.MarshalCSV(&rows, l.csvWriter)
		l.wroteHeader = err == nil
	}
	if err != nil {
		l.log.Warn("failed to write csv record", zap.Int("gen", rec.Generation), zap.Error(err))
	}
	l.csvWriter.Flush()

	line, err := json.Marshal(jsonRecord{RunID: l.runID, Record: rec})
	if err != nil {
		l.log.Warn("failed to encode json record", zap.Int("gen", rec.Generation), zap.Error(err))
		return
	}
	if _, err := l.jsonFile.Write(append(line, '\n')); err != nil {
		l.log.Warn("failed to write json record", zap.Int("gen", rec.Generation), zap.Error(err))
	}
}

// ReadRecords loads a CSV file written by LogGeneration
func ReadRecords(path string) ([]evolution.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []evolution.Record
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, err
	}
	return records, nil
}
