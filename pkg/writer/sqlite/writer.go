// Package sqlite provides SQLite report export for analysis sessions
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ChrisMcGann/SAXSKey/pkg/hplc"
	"github.com/ChrisMcGann/SAXSKey/pkg/session"
)

const (
	// Date format for HeaderTable (ISO 8601)
	headerDateFormat = "2006-01-02"
	// Timestamp format for SessionTable
	sessionTimeFormat = time.RFC3339
	// Report schema version
	schemaVersion = 1
)

// Writer handles writing sessions to SQLite report files
type Writer struct {
	db              *sql.DB
	outputPath      string
	sessionStmt     *sql.Stmt
	proteinStmt     *sql.Stmt
	guinierStmt     *sql.Stmt
	theoryStmt      *sql.Stmt
	scheduleStmt    *sql.Stmt
	flowStmt        *sql.Stmt
	exposureStmt    *sql.Stmt
	sessionsWritten int
	scheduleID      int
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		scheduleID: 1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.nextScheduleID(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS SessionTable (
		SessionId TEXT PRIMARY KEY,
		Label TEXT,
		CreationDate TEXT,
		Concentration DOUBLE
	);

	CREATE TABLE IF NOT EXISTS ProteinTable (
		SessionId TEXT REFERENCES SessionTable(SessionId),
		Sequence TEXT,
		Length INTEGER,
		MolecularWeight DOUBLE,
		DryVolume DOUBLE,
		Electrons INTEGER,
		ExtinctionMolar DOUBLE,
		ExtinctionMass DOUBLE,
		Abs01 DOUBLE,
		PartialSpecificVolume DOUBLE,
		RefractiveIncrement DOUBLE,
		ReducedCysteines BOOL
	);

	CREATE TABLE IF NOT EXISTS GuinierTable (
		SessionId TEXT REFERENCES SessionTable(SessionId),
		SourceFile TEXT,
		I0 DOUBLE,
		Rg DOUBLE,
		Slope DOUBLE,
		Intercept DOUBLE,
		RSquared DOUBLE,
		Points INTEGER,
		QMin DOUBLE,
		QMax DOUBLE,
		QMaxRg DOUBLE,
		WithinGuinier BOOL,
		blobQ2 BLOB,
		blobLnI BLOB
	);

	CREATE TABLE IF NOT EXISTS TheoreticalTable (
		SessionId TEXT REFERENCES SessionTable(SessionId),
		MolecularWeight DOUBLE,
		Concentration DOUBLE,
		ProteinType TEXT,
		I0 DOUBLE,
		Rg DOUBLE,
		PredictedRg DOUBLE,
		Shape TEXT,
		Dmax DOUBLE,
		DmaxMin DOUBLE,
		DmaxMax DOUBLE,
		DryVolume DOUBLE
	);

	CREATE TABLE IF NOT EXISTS ScheduleTable (
		ScheduleId INTEGER PRIMARY KEY,
		SessionId TEXT REFERENCES SessionTable(SessionId),
		PeakCenter DOUBLE,
		PeakFWHM DOUBLE,
		InjectionVolume DOUBLE,
		TargetFlowRate DOUBLE,
		InitialFlowRate DOUBLE,
		PeakStart DOUBLE,
		PeakStop DOUBLE,
		FractionStart DOUBLE,
		FractionStop DOUBLE,
		TimePerTube DOUBLE,
		ReportStop INTEGER
	);

	CREATE TABLE IF NOT EXISTS FlowTable (
		ScheduleId INTEGER REFERENCES ScheduleTable(ScheduleId),
		Row INTEGER,
		Label TEXT,
		Time DOUBLE,
		FlowRate DOUBLE
	);

	CREATE TABLE IF NOT EXISTS ExposureTable (
		ScheduleId INTEGER REFERENCES ScheduleTable(ScheduleId),
		Step INTEGER,
		Exposure DOUBLE,
		Hold INTEGER,
		Frames INTEGER
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		LastModifiedDate TEXT,
		NoofSessions INTEGER,
		Description TEXT
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// nextScheduleID continues numbering after schedules already in the file
func (w *Writer) nextScheduleID() error {
	var maxID sql.NullInt64
	if err := w.db.QueryRow(`SELECT MAX(ScheduleId) FROM ScheduleTable`).Scan(&maxID); err != nil {
		return fmt.Errorf("failed to read schedule ids: %w", err)
	}
	if maxID.Valid {
		w.scheduleID = int(maxID.Int64) + 1
	}
	return nil
}

// prepareStatements prepares SQL statements for insertion
func (w *Writer) prepareStatements() error {
	stmts := []struct {
		dst   **sql.Stmt
		name  string
		query string
	}{
		{&w.sessionStmt, "session", `
			INSERT OR REPLACE INTO SessionTable (SessionId, Label, CreationDate, Concentration)
			VALUES (?, ?, ?, ?)`},
		{&w.proteinStmt, "protein", `
			INSERT INTO ProteinTable (
				SessionId, Sequence, Length, MolecularWeight, DryVolume, Electrons,
				ExtinctionMolar, ExtinctionMass, Abs01, PartialSpecificVolume,
				RefractiveIncrement, ReducedCysteines
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`},
		{&w.guinierStmt, "guinier", `
			INSERT INTO GuinierTable (
				SessionId, SourceFile, I0, Rg, Slope, Intercept, RSquared, Points,
				QMin, QMax, QMaxRg, WithinGuinier, blobQ2, blobLnI
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`},
		{&w.theoryStmt, "theoretical", `
			INSERT INTO TheoreticalTable (
				SessionId, MolecularWeight, Concentration, ProteinType, I0, Rg,
				PredictedRg, Shape, Dmax, DmaxMin, DmaxMax, DryVolume
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`},
		{&w.scheduleStmt, "schedule", `
			INSERT INTO ScheduleTable (
				ScheduleId, SessionId, PeakCenter, PeakFWHM, InjectionVolume,
				TargetFlowRate, InitialFlowRate, PeakStart, PeakStop,
				FractionStart, FractionStop, TimePerTube, ReportStop
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`},
		{&w.flowStmt, "flow", `
			INSERT INTO FlowTable (ScheduleId, Row, Label, Time, FlowRate)
			VALUES (?, ?, ?, ?, ?)`},
		{&w.exposureStmt, "exposure", `
			INSERT INTO ExposureTable (ScheduleId, Step, Exposure, Hold, Frames)
			VALUES (?, ?, ?, ?, ?)`},
	}

	for _, s := range stmts {
		stmt, err := w.db.Prepare(s.query)
		if err != nil {
			return fmt.Errorf("failed to prepare %s statement: %w", s.name, err)
		}
		*s.dst = stmt
	}

	return nil
}

// WriteSession writes every recorded result of a session in one transaction
func (w *Writer) WriteSession(s *session.Session) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := w.writeSession(tx, s); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	w.sessionsWritten++
	return nil
}

func (w *Writer) writeSession(tx *sql.Tx, s *session.Session) error {
	id := s.ID.String()

	_, err := tx.Stmt(w.sessionStmt).Exec(id, s.Label, s.Created.Format(sessionTimeFormat), s.Concentration)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if p := s.Protein; p != nil {
		_, err = tx.Stmt(w.proteinStmt).Exec(
			id,
			p.Sequence,
			p.Length,
			p.MolecularWeight,
			p.DryVolume,
			p.Electrons,
			p.Extinction.Molar,
			p.Extinction.MassCm2PerG,
			p.Extinction.Abs01,
			p.PartialSpecificVolume,
			p.RefractiveIncrement,
			p.ReducedCysteines,
		)
		if err != nil {
			return fmt.Errorf("failed to insert protein: %w", err)
		}
	}

	if g := s.Guinier; g != nil {
		_, err = tx.Stmt(w.guinierStmt).Exec(
			id,
			s.GuinierSource,
			g.I0,
			g.Rg,
			g.Slope,
			g.Intercept,
			g.RSquared,
			g.Points,
			g.QMin,
			g.QMax,
			g.QMaxRg,
			g.WithinGuinier,
			encodeFloat64(g.X),
			encodeFloat64(g.Y),
		)
		if err != nil {
			return fmt.Errorf("failed to insert Guinier fit: %w", err)
		}
	}

	if th := s.Theoretical; th != nil {
		_, err = tx.Stmt(w.theoryStmt).Exec(
			id,
			th.MolecularWeight,
			th.Concentration,
			th.Rg.Type.String(),
			th.I0.I0,
			th.Rg.Rg,
			th.Rg.PredictedRg,
			th.Dmax.Shape.String(),
			th.Dmax.Dmax,
			th.Dmax.DmaxMin,
			th.Dmax.DmaxMax,
			th.DryVolume,
		)
		if err != nil {
			return fmt.Errorf("failed to insert theoretical parameters: %w", err)
		}
	}

	for _, sch := range s.Schedules {
		if err := w.writeSchedule(tx, id, sch); err != nil {
			return err
		}
	}

	return nil
}

func (w *Writer) writeSchedule(tx *sql.Tx, sessionID string, sch *hplc.Schedule) error {
	scheduleID := w.scheduleID

	_, err := tx.Stmt(w.scheduleStmt).Exec(
		scheduleID,
		sessionID,
		sch.Input.PeakCenter,
		sch.Input.PeakFWHM,
		sch.Input.InjectionVolume,
		sch.Input.TargetFlowRate,
		sch.Input.InitialFlowRate,
		sch.PeakStart,
		sch.PeakStop,
		sch.Fraction.Start,
		sch.Fraction.Stop,
		sch.Fraction.TimePerTube,
		sch.ReportStop,
	)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}

	flowStmt := tx.Stmt(w.flowStmt)
	for i, fp := range sch.Flow {
		if _, err := flowStmt.Exec(scheduleID, i+1, fp.Label, fp.Time, fp.FlowRate); err != nil {
			return fmt.Errorf("failed to insert flow row: %w", err)
		}
	}

	exposureStmt := tx.Stmt(w.exposureStmt)
	for _, e := range sch.Exposure {
		// Frames is NULL for steps without a frame count
		var frames interface{} = nil
		if e.Frames > 0 {
			frames = e.Frames
		}
		if _, err := exposureStmt.Exec(scheduleID, e.Step, e.Exposure, e.Hold, frames); err != nil {
			return fmt.Errorf("failed to insert exposure step: %w", err)
		}
	}

	w.scheduleID++
	return nil
}

// encodeFloat64 encodes values as a little-endian float64 blob
func encodeFloat64(values []float64) []byte {
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// DecodeFloat64 reverses the blob encoding used for point arrays
func DecodeFloat64(blob []byte) ([]float64, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 8", len(blob))
	}
	values := make([]float64, len(blob)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return values, nil
}

// writeHeader creates the header row of a new report, or bumps the
// modification date and session count of an existing one
func (w *Writer) writeHeader() error {
	now := time.Now().Format(headerDateFormat)

	var rows int
	if err := w.db.QueryRow(`SELECT COUNT(*) FROM HeaderTable`).Scan(&rows); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	var err error
	if rows == 0 {
		_, err = w.db.Exec(`
			INSERT INTO HeaderTable (version, CreationDate, LastModifiedDate, NoofSessions, Description)
			VALUES (?, ?, ?, ?, ?)
		`, schemaVersion, now, now, w.sessionsWritten, "SAXSKey report")
	} else {
		_, err = w.db.Exec(`
			UPDATE HeaderTable SET LastModifiedDate = ?, NoofSessions = NoofSessions + ?
		`, now, w.sessionsWritten)
	}
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// Finalize writes the header table and closes the database
func (w *Writer) Finalize() error {
	if err := w.writeHeader(); err != nil {
		w.Abort()
		return err
	}
	return w.Abort()
}

// Abort closes the database without touching the header table
func (w *Writer) Abort() error {
	// Close prepared statements
	for _, stmt := range []*sql.Stmt{
		w.sessionStmt, w.proteinStmt, w.guinierStmt, w.theoryStmt,
		w.scheduleStmt, w.flowStmt, w.exposureStmt,
	} {
		if stmt != nil {
			stmt.Close()
		}
	}

	// Close database
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close closes the database connection (alias for Finalize)
func (w *Writer) Close() error {
	return w.Finalize()
}
