// Package sdk provides a Go client for the mediquery HTTP API.
//
//	client := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//	resp, err := client.Search(ctx, sdk.SearchRequest{
//	    Query:    "find patients with diabetes",
//	    UserRole: "clinician",
//	})
package sdk
