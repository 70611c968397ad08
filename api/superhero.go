package api

type Image struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type UploadedImage struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type Superhero struct {
	ID                int64   `json:"id"`
	Nickname          string  `json:"nickname"`
	RealName          string  `json:"real_name"`
	OriginDescription string  `json:"origin_description"`
	Superpowers       string  `json:"superpowers"`
	CatchPhrase       string  `json:"catch_phrase"`
	Images            []Image `json:"images"`
}

// SuperheroForm holds the text fields of a multipart create request
type SuperheroForm struct {
	Nickname          string `form:"nickname" binding:"required"`
	RealName          string `form:"real_name" binding:"required"`
	OriginDescription string `form:"origin_description" binding:"required"`
	Superpowers       string `form:"superpowers" binding:"required"`
	CatchPhrase       string `form:"catch_phrase" binding:"required"`
}

// SuperheroPatch is a partial update; absent fields stay nil
type SuperheroPatch struct {
	Nickname          *string `json:"nickname"`
	RealName          *string `json:"real_name"`
	OriginDescription *string `json:"origin_description"`
	Superpowers       *string `json:"superpowers"`
	CatchPhrase       *string `json:"catch_phrase"`
}

type SuperheroCreated struct {
	Message   string    `json:"message"`
	Superhero Superhero `json:"superhero"`
}

type SuperheroList struct {
	Superheroes []Superhero `json:"superheroes"`
	Total       int         `json:"total"`
}

type ImagesUploaded struct {
	Message string          `json:"message"`
	Images  []UploadedImage `json:"images"`
}

type Message struct {
	Message string `json:"message"`
}
