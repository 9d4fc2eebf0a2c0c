package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bennorth/countdown-numbers-solver/archive"
	"github.com/bennorth/countdown-numbers-solver/pprint"
	"github.com/bennorth/countdown-numbers-solver/program"
	"github.com/bennorth/countdown-numbers-solver/solution"
)

const (
	// 25 + 50 over the default cards.
	sumHex = "000000 000100 020203 030000"
	// 100 ÷ 25.
	quotientHex = "000300 000000 010202 030000"
)

type testEnv struct {
	t      *testing.T
	dir    string
	config string
}

func newEnv(t *testing.T, configText string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "countdown.toml")
	require.NoError(t, os.WriteFile(path, []byte(configText), 0644))
	return &testEnv{t: t, dir: dir, config: path}
}

func defaultEnv(t *testing.T) *testEnv {
	return newEnv(t, `
[cards]
values = [25, 50, 75, 100, 3, 6]

[archive]
path = "archive.db"
`)
}

func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) write(name string, data []byte) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, data, 0644))
	return path
}

func TestDecodeHex(t *testing.T) {
	e := defaultEnv(t)

	out, err := e.run("decode", "--hex", sumHex)
	require.NoError(t, err)
	require.Equal(t, "50 + 25\n", out)

	out, err = e.run("decode", "--hex", sumHex, "--cards", "1,2,3,4,5,6")
	require.NoError(t, err)
	require.Equal(t, "2 + 1\n", out)
}

func TestDecodeSymbols(t *testing.T) {
	e := defaultEnv(t)

	out, err := e.run("decode", "--hex", quotientHex)
	require.NoError(t, err)
	require.Equal(t, "100 ÷ 25\n", out)

	out, err = e.run("--symbols", "ascii", "decode", "--hex", quotientHex)
	require.NoError(t, err)
	require.Equal(t, "100 / 25\n", out)
}

func TestDecodeRawFile(t *testing.T) {
	e := defaultEnv(t)
	code := program.NewBuilder().
		Value(3).Value(0).Value(1).Add(2, 0b11).Multiply(2, 0b10).Return().
		Value(4).Return().
		Bytes()
	path := e.write("programs.bin", code)

	out, err := e.run("decode", path)
	require.NoError(t, err)
	require.Equal(t, "100 ÷ (50 + 25)\n3\n", out)
}

func TestDecodeJSON(t *testing.T) {
	e := defaultEnv(t)

	out, err := e.run("--format", "json", "decode", "--hex", sumHex)
	require.NoError(t, err)

	var results []result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	require.Equal(t, "hex", results[0].Name)
	require.Equal(t, []string{"50 + 25"}, results[0].Lines)
	require.Equal(t, []int{25, 50, 75, 100, 3, 6}, results[0].Cards)
}

func TestDecodeYAML(t *testing.T) {
	e := defaultEnv(t)

	out, err := e.run("--format", "yaml", "decode", "--hex", sumHex)
	require.NoError(t, err)

	var results []result
	require.NoError(t, yaml.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	require.Equal(t, []string{"50 + 25"}, results[0].Lines)
}

func TestDecodeBatchFiles(t *testing.T) {
	e := defaultEnv(t)
	cards := pprint.Cards{1, 2, 3, 4, 5, 6}
	b1 := solution.NewBatch(cards, 0, program.NewBuilder().Value(5).Value(4).Multiply(2, 0b11).Return().Bytes())
	b2 := solution.NewBatch(cards, 0, program.NewBuilder().Value(0).Return().Bytes())

	single := filepath.Join(e.dir, "one.cbor")
	require.NoError(t, solution.WriteFile(single, b1))
	out, err := e.run("decode", single)
	require.NoError(t, err)
	require.Equal(t, "6 × 5\n", out)

	data, err := solution.MarshalList([]*solution.Batch{b1, b2})
	require.NoError(t, err)
	list := e.write("many.cbor", data)
	out, err = e.run("decode", list)
	require.NoError(t, err)
	require.Equal(t, "# "+list+"[0]\n6 × 5\n\n# "+list+"[1]\n1\n", out)
}

func TestDecodeErrors(t *testing.T) {
	e := defaultEnv(t)

	_, err := e.run("decode")
	require.ErrorIs(t, err, errNoInput)

	_, err = e.run("decode", "--hex", "0000")
	require.ErrorIs(t, err, pprint.ErrTruncated)

	_, err = e.run("decode", "--hex", "zz")
	require.Error(t, err)

	_, err = e.run("decode", "--hex", sumHex, "--cards", "1,2,3")
	require.ErrorContains(t, err, "want 6")

	_, err = e.run("--format", "xml", "decode", "--hex", sumHex)
	require.ErrorContains(t, err, "xml")

	bare := newEnv(t, "")
	_, err = bare.run("decode", "--hex", sumHex)
	require.ErrorContains(t, err, "no cards")
}

func TestDisasm(t *testing.T) {
	e := defaultEnv(t)
	out, err := e.run("disasm", "--hex", sumHex)
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"0000  VALUE 0 ; 25",
		"0003  VALUE 1 ; 50",
		"0006  ADD n=2 mask=0b11 (++)",
		"0009  RETURN",
	}, "\n")+"\n", out)

	bare := newEnv(t, "")
	out, err = bare.run("disasm", "--hex", sumHex)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "0000  VALUE 0\n"), out)
}

func TestFlat(t *testing.T) {
	e := defaultEnv(t)
	out, err := e.run("flat", "--hex", sumHex)
	require.NoError(t, err)
	require.Equal(t, "V(25) V(50) A(++) R\n", out)
}

func TestCompare(t *testing.T) {
	e := defaultEnv(t)
	a := e.write("a.txt", []byte("# solver a\nV(3) V(1) V(2) A(++) A(+-) R\n\nV(5) R\n"))
	b := e.write("b.txt", []byte("V(1) V(2) A(++) V(3) A(-+) R\nV(5) R\n"))
	c := e.write("c.txt", []byte("V(1) V(2) A(++) V(3) A(-+) R\nV(2) V(3) A(++) R\nV(3) V(2) A(++) R\n"))

	out, err := e.run("compare", a, b)
	require.NoError(t, err)
	require.Contains(t, out, "common: 2")

	out, err = e.run("compare", a, c)
	require.ErrorIs(t, err, errSetsDiffer)
	require.Contains(t, out, "only in "+a+":\n  5\n")
	require.Contains(t, out, "only in "+c+":\n  (+ +2 +3)\n")
	require.Contains(t, out, "  (+ +2 +3) x2\n")

	bad := e.write("bad.txt", []byte("V(1) V(2) R\n"))
	_, err = e.run("compare", a, bad)
	require.ErrorContains(t, err, bad+":1")
}

func TestCompareBatchAgainstFlat(t *testing.T) {
	e := defaultEnv(t)
	b := solution.NewBatch(pprint.Cards{24, 13, 99, 1, 2, 3}, 9,
		program.NewBuilder().Value(0).Value(1).Add(2, 0b10).Value(2).Multiply(2, 0b01).Return().Bytes())
	batch := filepath.Join(e.dir, "batch.cbor")
	require.NoError(t, solution.WriteFile(batch, b))
	flat := e.write("flat.txt", []byte("V(99) V(24) V(13) A(+-) M(+-) R\n"))

	out, err := e.run("compare", batch, flat)
	require.NoError(t, err, out)
	require.Contains(t, out, "common: 1")
}

func TestArchiveCommands(t *testing.T) {
	e := defaultEnv(t)
	b := solution.NewBatch(pprint.Cards{25, 50, 75, 100, 3, 6}, 75, program.NewBuilder().
		Value(0).Value(1).Add(2, 0b11).Return().
		Value(2).Return().
		Bytes())
	path := filepath.Join(e.dir, "batch.cbor")
	require.NoError(t, solution.WriteFile(path, b))

	_, err := e.run("decode", "--save", path)
	require.NoError(t, err)

	out, err := e.run("archive", "list")
	require.NoError(t, err)
	require.Contains(t, out, b.ID)
	require.Contains(t, out, "2 expressions")

	out, err = e.run("archive", "show", b.ID)
	require.NoError(t, err)
	require.Equal(t, "50 + 25\n75\n", out)

	_, err = e.run("archive", "delete", b.ID)
	require.NoError(t, err)

	_, err = e.run("archive", "show", b.ID)
	require.ErrorIs(t, err, archive.ErrNotFound)

	_, err = os.Stat(filepath.Join(e.dir, "archive.db"))
	require.NoError(t, err, "archive path should resolve against the config directory")
}
