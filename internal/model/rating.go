package model

// Rating is a user's score for a recipe. There is at most one per recipe id.
type Rating struct {
	RecipeID string `json:"recipeId"`
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
	Date     string `json:"date"`
}

// Video is a video search hit linked from a recipe page.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	Duration     string `json:"duration"`
}
