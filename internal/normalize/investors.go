package normalize

// SplitInvestors splits free-text investor lists on the common
// delimiters (comma, semicolon, ampersand), trims each token and drops
// empty ones. The order of the source text is preserved.
func SplitInvestors(raw string) []string {
	var investors []string
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ',' || raw[i] == ';' || raw[i] == '&' {
			if token := CleanText(raw[start:i]); token != "" {
				investors = append(investors, token)
			}
			start = i + 1
		}
	}
	return investors
}
