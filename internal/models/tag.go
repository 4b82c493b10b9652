// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "fmt"

// Tag labels posts; a post can carry any number of tags.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// URL returns the path of the listing filtered by this tag.
func (t *Tag) URL() string {
	return fmt.Sprintf("/tag/%s", t.Slug)
}
