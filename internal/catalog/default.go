package catalog

import "github.com/shopspring/decimal"

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// defaultEntries is the built-in price chart used when no external
// source is configured. Prices are USD.
var defaultEntries = []Entry{
	{Platform: "Instagram", Service: "Followers", UnitPrice: price("15"), Basis: PerThousand},
	{Platform: "Instagram", Service: "Likes", UnitPrice: price("8"), Basis: PerThousand},
	{Platform: "Instagram", Service: "Views", UnitPrice: price("5"), Basis: PerThousand},
	{Platform: "Instagram", Service: "Comments", UnitPrice: price("10"), Basis: PerUnit},
	{Platform: "Twitter", Service: "Followers", UnitPrice: price("350"), Basis: PerThousand},
	{Platform: "Twitter", Service: "Likes", UnitPrice: price("300"), Basis: PerThousand},
	{Platform: "Twitter", Service: "Retweets", UnitPrice: price("320"), Basis: PerThousand},
	{Platform: "YouTube", Service: "Subscribers", UnitPrice: price("45"), Basis: PerThousand},
	{Platform: "YouTube", Service: "Views", UnitPrice: price("12"), Basis: PerThousand},
	{Platform: "YouTube", Service: "Likes", UnitPrice: price("20"), Basis: PerThousand},
	{Platform: "TikTok", Service: "Followers", UnitPrice: price("18"), Basis: PerThousand},
	{Platform: "TikTok", Service: "Likes", UnitPrice: price("6"), Basis: PerThousand},
	{Platform: "TikTok", Service: "Views", UnitPrice: price("3"), Basis: PerThousand},
	{Platform: "Telegram", Service: "Members", UnitPrice: price("25"), Basis: PerThousand},
	{Platform: "Telegram", Service: "Views", UnitPrice: price("2"), Basis: PerThousand},
}

// Default returns the built-in price chart.
func Default() *Catalog {
	c, err := New(defaultEntries)
	if err != nil {
		// defaultEntries is a compile-time table; a failure here is a bug.
		panic(err)
	}
	return c
}
