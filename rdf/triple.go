package rdf

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Term is the object position of a triple: either an IRI or a typed literal.
type Term struct {
	Value     string
	IsLiteral bool
	Datatype  string
}

func IRI(value string) Term {
	return Term{Value: value}
}

func Literal(value string, datatype string) Term {
	return Term{Value: value, IsLiteral: true, Datatype: datatype}
}

type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

// Format of the serialized output.
type Format string

const (
	FormatTurtle   Format = "ttl"
	FormatNTriples Format = "nt"
)

var formatAliases = map[string]Format{
	"ttl":       FormatTurtle,
	"turtle":    FormatTurtle,
	"nt":        FormatNTriples,
	"ntriples":  FormatNTriples,
	"n-triples": FormatNTriples,
}

func ParseFormat(name string) (Format, error) {
	format, ok := formatAliases[strings.ToLower(name)]
	if !ok {
		return "", errors.Errorf("Unknown RDF format '%s'", name)
	}
	return format, nil
}

func (f Format) Extension() string {
	return "." + string(f)
}

// Writer serializes triples in a fixed format. Serialization is deterministic:
// triples are written in the order they are given, the prefix block is static.
type Writer struct {
	format Format
}

func NewWriter(format Format) *Writer {
	return &Writer{format: format}
}

func (w *Writer) Write(triples []Triple, out io.Writer) error {
	buffered := bufio.NewWriter(out)

	if w.format == FormatTurtle {
		for _, entry := range namespacePrefixes {
			_, err := fmt.Fprintf(buffered, "@prefix %s: <%s> .\n", entry.Prefix, entry.Namespace)
			if err != nil {
				return errors.Wrap(err, "Unable to write prefix block")
			}
		}
		_, err := fmt.Fprintln(buffered)
		if err != nil {
			return errors.Wrap(err, "Unable to write prefix block")
		}
	}

	for _, triple := range triples {
		var err error
		switch w.format {
		case FormatTurtle:
			_, err = fmt.Fprintf(buffered, "%s %s %s .\n", w.turtleIRI(triple.Subject), w.turtleIRI(triple.Predicate), w.turtleTerm(triple.Object))
		case FormatNTriples:
			_, err = fmt.Fprintf(buffered, "<%s> <%s> %s .\n", triple.Subject, triple.Predicate, w.nTriplesTerm(triple.Object))
		default:
			err = errors.Errorf("Unknown RDF format '%s'", w.format)
		}
		if err != nil {
			return errors.Wrapf(err, "Unable to write triple for subject %s", triple.Subject)
		}
	}

	return errors.Wrap(buffered.Flush(), "Unable to flush triple output")
}

// Local names may contain dots (e.g. "s2.level1.123") but must not end in one,
// that dot would terminate the turtle statement.
var turtleLocalName = regexp.MustCompile(`^[A-Za-z0-9_]([A-Za-z0-9_.-]*[A-Za-z0-9_-])?$`)

func (w *Writer) turtleIRI(iri string) string {
	for _, entry := range namespacePrefixes {
		if !strings.HasPrefix(iri, entry.Namespace) {
			continue
		}
		local := iri[len(entry.Namespace):]
		if turtleLocalName.MatchString(local) {
			return entry.Prefix + ":" + local
		}
	}
	return "<" + iri + ">"
}

func (w *Writer) turtleTerm(term Term) string {
	if !term.IsLiteral {
		return w.turtleIRI(term.Value)
	}
	literal := `"` + escapeLiteral(term.Value) + `"`
	if term.Datatype != "" {
		literal += "^^" + w.turtleIRI(term.Datatype)
	}
	return literal
}

func (w *Writer) nTriplesTerm(term Term) string {
	if !term.IsLiteral {
		return "<" + term.Value + ">"
	}
	literal := `"` + escapeLiteral(term.Value) + `"`
	if term.Datatype != "" {
		literal += "^^<" + term.Datatype + ">"
	}
	return literal
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeLiteral(value string) string {
	return literalEscaper.Replace(value)
}
