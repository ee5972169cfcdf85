/*
Package postsdk provides a client SDK and the wire types for the posts service.

# Client vs Session

The package is organized around two main types:

  - Client: anonymous operations (feed, user posts, health) and creating sessions
  - Session: operations that need a bearer token

Create a Client and register or log in to get a Session:

	client := postsdk.NewClient("http://localhost:8080")

	session, err := client.Register(ctx, "alice", "correct-horse")
	// or
	session, err := client.Login(ctx, "alice", "correct-horse")

Every user endpoint hands back a freshly issued token. The Session keeps the
newest one, so calling CurrentUser periodically keeps a long-lived session
from expiring:

	user, err := session.CurrentUser(ctx)

# Posts

	post, err := session.CreatePost(ctx, "hello", "first post")

	title := "hello again"
	post, err = session.UpdatePost(ctx, post.PostID, postsdk.PostPatch{Title: &title})

	feed, err := session.Feed(ctx) // FeedPost.Owned is set for authenticated callers

	err = session.DeletePost(ctx, post.PostID)

# Error Handling

Any non-2xx response comes back as an *APIError carrying the status code and,
for 422 responses, the per-field messages:

	_, err := client.Register(ctx, "alice", "pw")
	var apiErr *postsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity {
		fmt.Println(apiErr.Fields["username"]) // [username taken]
	}

IsStatus is a shorthand for the status check.

# Thread Safety

Sessions are safe for concurrent use.

# Validation

The request types implement Validate using github.com/jellydator/validation.
The server runs the same checks on every request body.
*/
package postsdk
