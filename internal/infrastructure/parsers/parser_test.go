package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParser_Parse_ValidInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []RawMember
	}{
		{
			name:  "single member",
			input: `[{"name": "Ravi", "city": "Chennai"}]`,
			expected: []RawMember{
				{Name: "Ravi", City: "Chennai", LineNum: 1},
			},
		},
		{
			name:     "empty array",
			input:    "[]",
			expected: []RawMember{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &JSONParser{}
			result, err := parser.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestJSONParser_Parse_AllFields(t *testing.T) {
	input := `[{
		"id": "m-1",
		"name": "Ravi",
		"spouseName": "Meena",
		"contactNumber": "98400",
		"state": "TN",
		"district": "Chennai",
		"city": "Adyar",
		"latitude": "13.0",
		"longitude": "80.2",
		"googleMapUrl": "https://maps.example/@13.0,80.2",
		"dateOfBirth": "1970-01-02",
		"dateOfMarriage": "1995-05-06",
		"isAlive": false,
		"dateOfDeath": "2020-03-04",
		"children": ["m-2", "m-3"]
	}]`

	parser := &JSONParser{}
	result, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result, 1)

	m := result[0]
	assert.Equal(t, "m-1", m.ID)
	assert.Equal(t, "Ravi", m.Name)
	assert.Equal(t, "Meena", m.SpouseName)
	assert.Equal(t, "Adyar", m.City)
	assert.Equal(t, "2020-03-04", m.DateOfDeath)
	require.NotNil(t, m.IsAlive)
	assert.False(t, *m.IsAlive)
	assert.Equal(t, []string{"m-2", "m-3"}, m.Children)
	assert.Equal(t, 1, m.LineNum)
}

func TestJSONParser_Parse_InvalidInput(t *testing.T) {
	parser := &JSONParser{}
	_, err := parser.Parse(strings.NewReader("not json"))
	require.Error(t, err)
}

func TestCSVParser_Parse_ValidInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []RawMember
	}{
		{
			name:  "required columns only",
			input: "name\nRavi\n",
			expected: []RawMember{
				{Name: "Ravi", LineNum: 2},
			},
		},
		{
			name:     "empty CSV (header only)",
			input:    "name\n",
			expected: nil,
		},
		{
			name:  "columns in different order",
			input: "city,name\nChennai,Anu\n",
			expected: []RawMember{
				{Name: "Anu", City: "Chennai", LineNum: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &CSVParser{}
			result, err := parser.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCSVParser_Parse_AllColumns(t *testing.T) {
	input := "id,name,spouseName,contactNumber,state,district,city,latitude,longitude,googleMapUrl,dateOfBirth,dateOfMarriage,isAlive,dateOfDeath,children\n" +
		"m-1,Ravi,Meena,98400,TN,Chennai,Adyar,13.0,80.2,,1970-01-02,1995-05-06,no,2020-03-04,m-2; m-3\n"

	parser := &CSVParser{}
	result, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result, 1)

	m := result[0]
	assert.Equal(t, "m-1", m.ID)
	assert.Equal(t, "Ravi", m.Name)
	assert.Equal(t, "98400", m.ContactNumber)
	assert.Equal(t, "TN", m.State)
	assert.Equal(t, "13.0", m.Latitude)
	assert.Empty(t, m.GoogleMapURL)
	require.NotNil(t, m.IsAlive)
	assert.False(t, *m.IsAlive)
	assert.Equal(t, []string{"m-2", "m-3"}, m.Children)
	assert.Equal(t, 2, m.LineNum)
}

func TestCSVParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{
			name:   "missing required column",
			input:  "city,state\nChennai,TN\n",
			errMsg: "missing required column: name",
		},
		{
			name:   "invalid isAlive value",
			input:  "name,isAlive\nRavi,maybe\n",
			errMsg: "line 2: invalid isAlive value",
		},
		{
			name:   "empty input",
			input:  "",
			errMsg: "reading CSV header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &CSVParser{}
			_, err := parser.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestForFormat(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFormat("json"))
	assert.IsType(t, &CSVParser{}, ForFormat("CSV"))
	assert.Nil(t, ForFormat("unknown"))
}

func TestForFile(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFile("members.json"))
	assert.IsType(t, &CSVParser{}, ForFile("family.csv"))
	assert.Nil(t, ForFile("file.txt"))
	assert.Nil(t, ForFile("noextension"))
}
