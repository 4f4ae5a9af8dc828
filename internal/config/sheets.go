package config

const (
	spreadsheetIDKey   = "SPREADSHEET_ID"
	credentialsFileKey = "GOOGLE_CREDENTIALS_FILE"

	defaultCredentialsFile = "/etc/secrets/credentials.json"
	defaultWorksheet       = "Sheet1"
	defaultTotalCell       = "G3"
	defaultCigaretteCell   = "J3"
)

type SheetsConfig struct {
	WorksheetTitle     string `yaml:"worksheet"`
	TotalCellRef       string `yaml:"total-cell"`
	CigaretteTotalCell string `yaml:"cigarette-total-cell"`

	spreadsheetID   string
	credentialsFile string
}

func (s *SheetsConfig) loadEnv() {
	if s.WorksheetTitle == "" {
		s.WorksheetTitle = defaultWorksheet
	}
	if s.TotalCellRef == "" {
		s.TotalCellRef = defaultTotalCell
	}
	if s.CigaretteTotalCell == "" {
		s.CigaretteTotalCell = defaultCigaretteCell
	}
	s.spreadsheetID = getEnv(spreadsheetIDKey, "")
	s.credentialsFile = getEnv(credentialsFileKey, defaultCredentialsFile)
}

func (s *SheetsConfig) SpreadsheetID() string {
	return s.spreadsheetID
}

func (s *SheetsConfig) CredentialsFile() string {
	return s.credentialsFile
}

func (s *SheetsConfig) Worksheet() string {
	return s.WorksheetTitle
}

// TotalCell and CigaretteCell hold formulas maintained in the sheet
// itself; the bot only reads them.
func (s *SheetsConfig) TotalCell() string {
	return s.TotalCellRef
}

func (s *SheetsConfig) CigaretteCell() string {
	return s.CigaretteTotalCell
}
