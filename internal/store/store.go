package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"spot-scraper/internal/scrapers/portal"
	"spot-scraper/internal/spot"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

var tracer = otel.Tracer("spot-scraper/internal/store")

var ErrNotFound = errors.New("store: not found")

type Store struct {
	db *sql.DB
}

func isRemote(dsn string) bool {
	for _, prefix := range []string{"libsql://", "http://", "https://"} {
		if strings.HasPrefix(dsn, prefix) {
			return true
		}
	}
	return false
}

// Open connects to a remote libsql database for libsql:// and http(s):// urls and to a
// local sqlite file (or :memory:) otherwise, then makes sure the schema exists.
func Open(ctx context.Context, dsn string) (Store, error) {
	if dsn == "" {
		return Store{}, fmt.Errorf("a database path was not specified")
	}

	var db *sql.DB
	var err error
	if isRemote(dsn) {
		db, err = sql.Open("libsql", dsn)
		if err != nil {
			return Store{}, err
		}
	} else {
		db, err = openSqlite(dsn)
		if err != nil {
			return Store{}, err
		}
	}

	for _, stmt := range strings.Split(Schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err = db.ExecContext(ctx, stmt)
		if err != nil {
			db.Close()
			return Store{}, fmt.Errorf("apply schema: %w", err)
		}
	}
	return Store{db: db}, nil
}

func openSqlite(path string) (*sql.DB, error) {
	if path != ":memory:" {
		_, statErr := os.Stat(path)
		if os.IsNotExist(statErr) {
			f, err := os.Create(path)
			if err != nil {
				return nil, err
			}
			f.Close()
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer at a time, a :memory: database also only lives as long as
	// its single connection
	db.SetMaxOpenConns(1)
	if path != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

func (s Store) Close() error {
	return s.db.Close()
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func naiveUnix(ts spot.Timestamp) sql.NullInt64 {
	if ts.Time == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: ts.Time.Unix(), Valid: true}
}

// SaveSnapshot replaces everything stored for the snapshot's courses in one transaction.
// Courses missing from the snapshot are left untouched.
func (s Store) SaveSnapshot(ctx context.Context, snap portal.Snapshot, at time.Time) error {
	ctx, span := tracer.Start(ctx, "SaveSnapshot")
	defer span.End()
	span.SetAttributes(attribute.Int("courses", len(snap.Courses)))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail(span, err)
	}
	defer tx.Rollback()

	for idx, course := range snap.Courses {
		err = saveCourse(ctx, tx, idx, course, snap.Topics, at.Unix())
		if err != nil {
			return fail(span, fmt.Errorf("save course %s: %w", course.ID, err))
		}
	}

	err = tx.Commit()
	if err != nil {
		return fail(span, err)
	}
	return nil
}

func saveCourse(ctx context.Context, tx *sql.Tx, idx int, course spot.CourseDetail, topics map[string][]spot.TopicDetail, at int64) error {
	for _, table := range []string{"task", "topic"} {
		_, err := tx.ExecContext(ctx, "delete from "+table+" where course_id = ?", course.ID)
		if err != nil {
			return err
		}
	}
	_, err := tx.ExecContext(ctx, "delete from course where id = ?", course.ID)
	if err != nil {
		return err
	}

	var numericID sql.NullInt64
	if course.NumericID != nil {
		numericID = sql.NullInt64{Int64: *course.NumericID, Valid: true}
	}

	detail, err := json.Marshal(course)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(
		ctx,
		"insert into course (id, numeric_id, idx, code, name, detail, scraped_at) values (?, ?, ?, ?, ?, ?, ?)",
		course.ID, numericID, idx, course.Code, course.Name, string(detail), at,
	)
	if err != nil {
		return err
	}

	for topicIdx, topic := range topics[course.ID] {
		err = saveTopic(ctx, tx, course.ID, topicIdx, topic, at)
		if err != nil {
			return fmt.Errorf("topic %d: %w", topic.ID, err)
		}
	}
	return nil
}

func saveTopic(ctx context.Context, tx *sql.Tx, courseID string, idx int, topic spot.TopicDetail, at int64) error {
	detail, err := json.Marshal(topic)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(
		ctx,
		"insert into topic (course_id, topic_id, idx, detail, scraped_at) values (?, ?, ?, ?, ?)",
		courseID, topic.ID, idx, string(detail), at,
	)
	if err != nil {
		return err
	}

	for taskIdx, task := range topic.Tasks {
		record, err := json.Marshal(task)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(
			ctx,
			"insert into task (course_id, topic_id, idx, task_id, status, due_at, record) values (?, ?, ?, ?, ?, ?, ?)",
			courseID, topic.ID, taskIdx, task.ID, task.Status.String(), naiveUnix(task.DueDate), string(record),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Courses returns the stored courses in listing order.
func (s Store) Courses(ctx context.Context) ([]spot.CourseDetail, error) {
	ctx, span := tracer.Start(ctx, "Courses")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, "select detail from course order by idx, id")
	if err != nil {
		return nil, fail(span, err)
	}
	defer rows.Close()

	courses := []spot.CourseDetail{}
	for rows.Next() {
		var detail string
		err = rows.Scan(&detail)
		if err != nil {
			return nil, fail(span, err)
		}
		var course spot.CourseDetail
		err = json.Unmarshal([]byte(detail), &course)
		if err != nil {
			return nil, fail(span, fmt.Errorf("decode course: %w", err))
		}
		courses = append(courses, course)
	}
	if err = rows.Err(); err != nil {
		return nil, fail(span, err)
	}
	return courses, nil
}

// TaskEntry is a stored task along with the course it belongs to.
type TaskEntry struct {
	CourseID   string
	CourseCode string
	CourseName string
	Task       spot.TaskRecord
}

// Tasks returns every stored task, soonest due first. Tasks without a parsed due date
// come last.
func (s Store) Tasks(ctx context.Context) ([]TaskEntry, error) {
	ctx, span := tracer.Start(ctx, "Tasks")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
select course.id, course.code, course.name, task.record
from task
join course on course.id = task.course_id
order by task.due_at is null, task.due_at, course.idx, task.topic_id, task.idx`)
	if err != nil {
		return nil, fail(span, err)
	}
	defer rows.Close()

	entries := []TaskEntry{}
	for rows.Next() {
		var entry TaskEntry
		var record string
		err = rows.Scan(&entry.CourseID, &entry.CourseCode, &entry.CourseName, &record)
		if err != nil {
			return nil, fail(span, err)
		}
		err = json.Unmarshal([]byte(record), &entry.Task)
		if err != nil {
			return nil, fail(span, fmt.Errorf("decode task: %w", err))
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("tasks", len(entries)))
	return entries, nil
}

// TopicDetail returns a stored topic by the listing id of its course and its topic id.
func (s Store) TopicDetail(ctx context.Context, courseID string, topicID int64) (spot.TopicDetail, error) {
	ctx, span := tracer.Start(ctx, "TopicDetail")
	defer span.End()
	span.SetAttributes(
		attribute.String("course", courseID),
		attribute.Int64("topic", topicID),
	)

	var detail string
	err := s.db.QueryRowContext(
		ctx,
		"select detail from topic where course_id = ? and topic_id = ?",
		courseID, topicID,
	).Scan(&detail)
	if errors.Is(err, sql.ErrNoRows) {
		return spot.TopicDetail{}, ErrNotFound
	}
	if err != nil {
		return spot.TopicDetail{}, fail(span, err)
	}

	var topic spot.TopicDetail
	err = json.Unmarshal([]byte(detail), &topic)
	if err != nil {
		return spot.TopicDetail{}, fail(span, fmt.Errorf("decode topic: %w", err))
	}
	return topic, nil
}
