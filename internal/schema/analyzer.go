package schema

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// ListingTypes are the entry types of a schema listing line.
var ListingTypes = []string{"SCHEMA", "DATABASE"}

// ParseListing reads the output of a schema listing. Each useful line holds a
// whitespace separated (type, name) pair, e.g. "SCHEMA  HR".
// Lines not starting with a listing type (progress bars, diagnostics) are
// dropped and names are returned once, in first-seen order.
func ParseListing(out []byte) []Schema {
	var schemas []Schema

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || !isListingType(fields[0]) {
			if len(fields) > 0 {
				log.Debugf("schema listing line ignored: %q", scanner.Text())
			}
			continue
		}
		schemas = append(schemas, Schema{Type: strings.ToUpper(fields[0]), Name: fields[1]})
	}

	return lo.UniqBy(schemas, func(s Schema) string { return s.Name })
}

// Names returns the schema names of a listing.
func Names(schemas []Schema) []string {
	return lo.Map(schemas, func(s Schema, _ int) string { return s.Name })
}

func isListingType(tok string) bool {
	return lo.ContainsBy(ListingTypes, func(t string) bool { return strings.EqualFold(t, tok) })
}
