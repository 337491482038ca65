package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/els0r/netproto/pkg/protocols"
	jsoniter "github.com/json-iterator/go"
	"github.com/xlab/tablewriter"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type tablePrinter struct {
	w io.Writer
}

func (p *tablePrinter) PrintRecord(r *protocols.Record) error {
	return p.PrintRecords([]*protocols.Record{r}, "")
}

func (p *tablePrinter) PrintRecords(records []*protocols.Record, fingerprint string) error {
	table := tablewriter.CreateTable()
	table.AddHeaders("NAME", "NUMBER", "ALIASES")
	for _, r := range records {
		table.AddRow(r.Name(), r.Number(), strings.Join(r.Aliases(), " "))
	}
	if _, err := fmt.Fprintln(p.w, table.Render()); err != nil {
		return err
	}
	if fingerprint != "" {
		_, err := fmt.Fprintf(p.w, "\n%d protocols, fingerprint %s\n", len(records), fingerprint)
		return err
	}
	return nil
}

// plainPrinter writes records in protocols(5) format
type plainPrinter struct {
	w io.Writer
}

func (p *plainPrinter) PrintRecord(r *protocols.Record) error {
	_, err := fmt.Fprintln(p.w, r.String())
	return err
}

func (p *plainPrinter) PrintRecords(records []*protocols.Record, fingerprint string) error {
	if fingerprint != "" {
		if _, err := fmt.Fprintf(p.w, "# fingerprint %s\n", fingerprint); err != nil {
			return err
		}
	}
	for _, r := range records {
		if err := p.PrintRecord(r); err != nil {
			return err
		}
	}
	return nil
}

type jsonPrinter struct {
	w io.Writer
}

func (p *jsonPrinter) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *jsonPrinter) PrintRecord(r *protocols.Record) error {
	return p.encode(r.Entry())
}

func (p *jsonPrinter) PrintRecords(records []*protocols.Record, fingerprint string) error {
	return p.encode(newList(records, fingerprint))
}

type yamlPrinter struct {
	w io.Writer
}

func (p *yamlPrinter) encode(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (p *yamlPrinter) PrintRecord(r *protocols.Record) error {
	return p.encode(r.Entry())
}

func (p *yamlPrinter) PrintRecords(records []*protocols.Record, fingerprint string) error {
	return p.encode(newList(records, fingerprint))
}

type tomlPrinter struct {
	w io.Writer
}

func (p *tomlPrinter) PrintRecord(r *protocols.Record) error {
	return toml.NewEncoder(p.w).Encode(r.Entry())
}

func (p *tomlPrinter) PrintRecords(records []*protocols.Record, fingerprint string) error {
	return toml.NewEncoder(p.w).Encode(newList(records, fingerprint))
}

type csvPrinter struct {
	w io.Writer
}

var csvHeader = []string{"name", "number", "aliases"}

func (p *csvPrinter) PrintRecord(r *protocols.Record) error {
	return p.PrintRecords([]*protocols.Record{r}, "")
}

func (p *csvPrinter) PrintRecords(records []*protocols.Record, _ string) error {
	cw := csv.NewWriter(p.w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Name(), strconv.Itoa(r.Number()), strings.Join(r.Aliases(), " ")}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
