package dsnlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// MinFields is the number of fields a connection line must carry (audit users are optional).
const MinFields = 5

// ErrMalformedLine aborts the whole run: nothing is processed from a list with a bad line.
var ErrMalformedLine = errors.New("malformed line")

// Load reads the whole list file before any processing starts.
func Load(path string) ([]*ConnectionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list file: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Parse builds connection records in file order.
// Lines whose first field is not an engine tag (the header included) are ignored.
func Parse(r io.Reader) ([]*ConnectionRecord, error) {
	var records []*ConnectionRecord

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		first, _, _ := strings.Cut(line, ",")
		engine, ok := ParseEngine(first)
		if !ok {
			log.Debugf("list line %d ignored: %q is not an engine type", lineNum, first)
			continue
		}

		fields := strings.Split(strings.ReplaceAll(line, `"`, ""), ",")
		if len(fields) < MinFields {
			return nil, fmt.Errorf("%w %d: got %d fields, need at least %d (type,schema,dsn,user,password[,audit_users])",
				ErrMalformedLine, lineNum, len(fields), MinFields)
		}
		// dsn, user, password and audit users are passed to the tool as written.
		rec := &ConnectionRecord{
			Line:     lineNum,
			Engine:   engine,
			Schema:   strings.TrimSpace(fields[1]),
			DSN:      fields[2],
			User:     fields[3],
			Password: fields[4],
		}
		if len(fields) > 5 {
			rec.AuditUsers = fields[5]
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list: %w", err)
	}

	log.Infof("loaded %d connection records", len(records))
	return records, nil
}
