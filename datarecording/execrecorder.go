package datarecording

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExecInfoTableName is the table that holds the execution information.
const ExecInfoTableName = "exec_info"

// ExecInfo is one property of a program execution.
type ExecInfo struct {
	Property string
	Value    string
}

// An ExecRecorder records when and how the program was run.
type ExecRecorder struct {
	tableName string
	recorder  DataRecorder
	entries   []ExecInfo
	now       func() time.Time
}

// NewExecRecorder creates the exec_info table in the recorder.
func NewExecRecorder(recorder DataRecorder) *ExecRecorder {
	e := &ExecRecorder{
		tableName: ExecInfoTableName,
		recorder:  recorder,
		now:       time.Now,
	}

	recorder.CreateTable(e.tableName, ExecInfo{})

	return e
}

// Start logs the start time, the command, and the working directory.
func (e *ExecRecorder) Start() {
	e.add("Start Time", e.timestamp())
	e.add("Command", strings.Join(os.Args, " "))

	cwd, err := os.Getwd()
	if err != nil {
		ex, exErr := os.Executable()
		if exErr != nil {
			panic(exErr)
		}

		cwd = filepath.Dir(ex)
	}

	e.add("Working Directory", cwd)
}

// AddProperty records an extra property of the execution.
func (e *ExecRecorder) AddProperty(property, value string) {
	e.add(property, value)
}

// End writes the collected properties along with the end time.
func (e *ExecRecorder) End() {
	e.add("End Time", e.timestamp())

	for _, entry := range e.entries {
		e.recorder.InsertData(e.tableName, entry)
	}

	e.entries = nil

	e.recorder.Flush()
}

func (e *ExecRecorder) add(property, value string) {
	e.entries = append(e.entries, ExecInfo{Property: property, Value: value})
}

func (e *ExecRecorder) timestamp() string {
	return e.now().Format("2006-01-02 15:04:05.000000000")
}
