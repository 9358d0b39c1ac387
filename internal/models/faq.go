// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// FAQCategory groups FAQ items. The ID is a short slug-form natural key
// ("general", "pricing").
type FAQCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`

	// ItemCount is populated live by FAQStore.ListCategories.
	ItemCount int `json:"item_count"`
}

// FAQItem is a single question/answer pair. The numeric ID comes from the
// content source and acts as the natural key for upserts.
type FAQItem struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Popular  bool   `json:"popular"`
}
