package normalize

// ExtractList locates the list of raw match records inside an upstream
// payload, whichever of the known body shapes the provider used. The
// probe order mirrors upstream precedence: a nested `response.games`
// object wins over a bare `response` array, then `games`, then
// `fixtures`. Unknown shapes yield an empty list, never an error.
func ExtractList(payload any) []any {
	root := asMap(payload)
	if root == nil {
		return []any{}
	}

	candidates := []any{
		asMap(root["response"])["games"],
		root["games"],
		root["response"],
		root["fixtures"],
	}
	for _, c := range candidates {
		if list, ok := c.([]any); ok {
			return list
		}
	}
	return []any{}
}
