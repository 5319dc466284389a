package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/gopanel/geometry2D"
	"github.com/notargets/gopanel/types"
)

const readStage = "read geometry"

// ReadAirfoil reads a coordinate table from a file. See ParseAirfoil.
func ReadAirfoil(fileName string) (af *geometry2D.Airfoil, err error) {
	var (
		file *os.File
	)
	log.WithField("file", fileName).Debug("reading airfoil coordinates")
	if file, err = os.Open(fileName); err != nil {
		err = inputError(fmt.Errorf("unable to open file %s: %w", fileName, err))
		return
	}
	defer file.Close()
	name := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	return ParseAirfoil(file, name)
}

// ParseAirfoil reads whitespace separated x y pairs, one or more pairs per
// line, in file order. Blank lines are skipped. The first non-blank line may
// be a Selig style name header if it does not start with a number; anywhere
// else a non-numeric token is an error.
func ParseAirfoil(r io.Reader, defaultName string) (af *geometry2D.Airfoil, err error) {
	var (
		scanner  = bufio.NewScanner(r)
		lineNum  int
		seenData bool
		values   []float64
	)
	af = &geometry2D.Airfoil{Name: defaultName}
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if values, err = parseTokens(tokens); err != nil {
			if !seenData && !isNumber(tokens[0]) { // Selig name header
				af.Name = strings.Join(tokens, " ")
				seenData = true
				err = nil
				continue
			}
			err = inputError(fmt.Errorf("line %d: %w", lineNum, err))
			return nil, err
		}
		seenData = true
		if len(values)%2 != 0 {
			err = inputError(fmt.Errorf("line %d: odd number of coordinates (%d)", lineNum, len(values)))
			return nil, err
		}
		for i := 0; i < len(values); i += 2 {
			af.X = append(af.X, values[i])
			af.Y = append(af.Y, values[i+1])
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, inputError(err)
	}
	if err = CheckBoundary(af.X, af.Y); err != nil {
		return nil, err
	}
	return
}

// CheckBoundary validates a boundary curve, reporting problems as
// geometry input errors.
func CheckBoundary(X, Y []float64) (err error) {
	if err = geometry2D.CheckBoundary(X, Y); err != nil {
		return inputError(err)
	}
	return
}

func parseTokens(tokens []string) (values []float64, err error) {
	values = make([]float64, len(tokens))
	for i, token := range tokens {
		if values[i], err = strconv.ParseFloat(token, 64); err != nil {
			return nil, fmt.Errorf("non-numeric token [%s]", token)
		}
	}
	return
}

func isNumber(token string) bool {
	_, err := strconv.ParseFloat(token, 64)
	return err == nil
}

func inputError(err error) error {
	return types.NewSolveError(types.GeometryInputError, readStage, -1, -1, err)
}
