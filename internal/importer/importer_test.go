package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
	"github.com/AlexanderWinters/the-score-card/internal/fixture"
)

func TestFactory_ForFilename(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		filename string
		want     string
		wantErr  bool
	}{
		{filename: "courses.json", want: "json"},
		{filename: "courses.CSV", want: "csv"},
		{filename: "courses.xlsx", want: "xlsx"},
		{filename: "courses.xls", wantErr: true},
		{filename: "courses.yaml", want: "yaml"},
		{filename: "courses.yml", want: "yaml"},
		{filename: "courses.txt", wantErr: true},
		{filename: "courses", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			parser, err := factory.ForFilename(tt.filename)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "json":
				require.IsType(t, &JSONParser{}, parser)
			case "csv":
				require.IsType(t, &CSVParser{}, parser)
			case "xlsx":
				require.IsType(t, &XLSXParser{}, parser)
			case "yaml":
				require.IsType(t, &YAMLParser{}, parser)
			}
		})
	}
}

func TestJSONParser_ArrayAndObject(t *testing.T) {
	catalog := fixture.Catalog()
	list, err := json.Marshal(catalog)
	require.NoError(t, err)

	got, err := NewJSONParser().Parse(list)
	require.NoError(t, err)
	require.Len(t, got, len(catalog))
	require.Equal(t, catalog[0].Name, got[0].Name)

	single, err := json.Marshal(catalog[1])
	require.NoError(t, err)
	got, err = NewJSONParser().Parse(single)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, catalog[1].TeeBoxes[0].Holes, got[0].TeeBoxes[0].Holes)
}

func TestJSONParser_RejectsMalformed(t *testing.T) {
	_, err := NewJSONParser().Parse([]byte(`{"name": `))
	require.Error(t, err)

	_, err = NewJSONParser().Parse([]byte("   "))
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestYAMLParser_MatchesJSONShape(t *testing.T) {
	catalog := fixture.Catalog()[:2]
	data, err := yaml.Marshal(catalog)
	require.NoError(t, err)

	got, err := NewYAMLParser().Parse(data)
	require.NoError(t, err)
	require.Equal(t, catalog, got)

	_, err = NewYAMLParser().Parse([]byte("just a string"))
	require.Error(t, err)
}

func catalogRecords(t *testing.T, ins []courses.CourseInput) [][]string {
	t.Helper()
	records := [][]string{{ColCourseName, ColTeeName, ColTeeColor, ColHoleNumber, ColDistance, ColPar, ColHcpIndex, ColLocation, ColDescription}}
	for _, c := range ins {
		for _, tee := range c.TeeBoxes {
			for _, h := range tee.Holes {
				records = append(records, []string{
					c.Name, tee.Name, tee.Color,
					strconv.Itoa(h.Number), strconv.Itoa(h.Distance), strconv.Itoa(h.Par), strconv.Itoa(h.HandicapIndex),
					c.Location, c.Description,
				})
			}
		}
	}
	return records
}

func toCSV(t *testing.T, records [][]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.WriteAll(records))
	return buf.Bytes()
}

func TestCSVParser_GroupsRowsInOrder(t *testing.T) {
	catalog := fixture.Catalog()[:2]
	got, err := NewCSVParser().Parse(toCSV(t, catalogRecords(t, catalog)))
	require.NoError(t, err)
	require.Equal(t, catalog, got)
}

func TestCSVParser_SkipsInvalidRows(t *testing.T) {
	data := strings.Join([]string{
		"course_name,tee_name,hole_number,distance,par,hcp_index",
		"Links,White,1,350,4,1",
		",White,2,150,3,2",
		"Links,,2,150,3,2",
		"Links,White,x,150,3,2",
		"Links,White,2,0,3,2",
		"Links,White,2,150,3,-1",
		"Links,White,2,150",
		"Links,White,2,150,3,2",
	}, "\n")

	got, err := NewCSVParser().Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].TeeBoxes, 1)
	require.Equal(t, []courses.Hole{
		{Number: 1, Distance: 350, Par: 4, HandicapIndex: 1},
		{Number: 2, Distance: 150, Par: 3, HandicapIndex: 2},
	}, got[0].TeeBoxes[0].Holes)
}

func TestCSVParser_HeaderErrors(t *testing.T) {
	_, err := NewCSVParser().Parse([]byte("course_name,tee_name,hole_number,distance,par\nA,B,1,100,3\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
	require.Contains(t, err.Error(), ColHcpIndex)

	_, err = NewCSVParser().Parse([]byte("course_name,tee_name,hole_number,distance,par,hcp_index\n"))
	require.ErrorIs(t, err, ErrNoDataRows)

	_, err = NewCSVParser().Parse([]byte("a,\"b\nc"))
	require.Error(t, err)
}

func TestXLSXParser_FirstSheet(t *testing.T) {
	catalog := fixture.Catalog()[:1]
	records := catalogRecords(t, catalog)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}
	_, err := f.NewSheet("Notes")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Notes", "A1", "ignored"))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	got, err := NewXLSXParser().Parse(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, catalog, got)
}

func TestXLSXParser_RejectsGarbage(t *testing.T) {
	_, err := NewXLSXParser().Parse([]byte("not a workbook"))
	require.Error(t, err)
}

func TestPrepare_SplitsInvalidCourses(t *testing.T) {
	good := fixture.Catalog()[0]
	bad := fixture.Catalog()[1]
	bad.TeeBoxes[0].Holes = bad.TeeBoxes[0].Holes[:9]
	noTees := courses.CourseInput{Name: "Empty"}

	valid, skipped := Prepare([]courses.CourseInput{good, bad, noTees})
	require.Len(t, valid, 1)
	require.Equal(t, good.Name, valid[0].Name)
	require.Len(t, skipped, 2)
	require.Equal(t, bad.Name, skipped[0].Name)
	require.Equal(t, "Empty", skipped[1].Name)
	require.NotEmpty(t, skipped[0].Reason)
}

func ExampleFactory_ForFilename() {
	parser, err := NewFactory().ForFilename("catalog.csv")
	if err != nil {
		fmt.Println(err)
		return
	}
	got, _ := parser.Parse([]byte("course_name,tee_name,hole_number,distance,par,hcp_index\nLinks,White,1,350,4,1\n"))
	fmt.Println(got[0].Name, got[0].TeeBoxes[0].Name, len(got[0].TeeBoxes[0].Holes))
	// Output: Links White 1
}
