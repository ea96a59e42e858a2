package httpkit_test

import (
	"context"
	"fmt"

	"github.com/taluhq/httpkit"
)

type article struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func Example() {
	cfg, err := httpkit.NewConfig().
		WithName("content-api").
		WithBaseURL("https://api.example.com").
		WithJSONHeaders().
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}

	client, err := httpkit.New(cfg,
		httpkit.WithMiddleware(
			httpkit.BearerAuth("token"),
			httpkit.RequestID(),
		),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer client.Close()

	a, err := httpkit.GetJSON[article](context.Background(), client, "/articles/1")
	if err != nil {
		if httpkit.IsResponse(err) {
			fmt.Println("server rejected the request")
		}
		return
	}
	fmt.Println(a.Title)
}
