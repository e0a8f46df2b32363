package normalize

import "sort"

// alternatives maps a canonical ingredient key to more specific variant
// keys treated as equivalent for lookup. Extend the table here; the
// matching logic never needs to change for new entries.
var alternatives = map[string][]string{
	"tomato":   {"cherry-tomato", "plum-tomato", "beef-tomato", "roma-tomato"},
	"onion":    {"red-onion", "white-onion", "yellow-onion", "spring-onion", "shallot"},
	"pepper":   {"bell-pepper", "red-pepper", "green-pepper", "chili-pepper", "jalapeno"},
	"chicken":  {"chicken-breast", "chicken-thigh", "chicken-wing", "chicken-leg"},
	"beef":     {"ground-beef", "beef-steak", "beef-mince", "stewing-beef"},
	"pork":     {"pork-chop", "pork-loin", "pork-belly", "bacon"},
	"fish":     {"salmon", "tuna", "cod", "haddock"},
	"cheese":   {"cheddar", "mozzarella", "parmesan", "feta", "cream-cheese"},
	"milk":     {"whole-milk", "skim-milk", "almond-milk", "oat-milk"},
	"oil":      {"olive-oil", "vegetable-oil", "sunflower-oil", "sesame-oil"},
	"flour":    {"all-purpose-flour", "plain-flour", "wheat-flour", "self-raising-flour"},
	"sugar":    {"brown-sugar", "caster-sugar", "powdered-sugar", "icing-sugar"},
	"salt":     {"sea-salt", "kosher-salt", "table-salt"},
	"garlic":   {"garlic-clove", "garlic-powder", "minced-garlic"},
	"ginger":   {"fresh-ginger", "ground-ginger", "ginger-root"},
	"potato":   {"sweet-potato", "baby-potato", "russet-potato"},
	"carrot":   {"baby-carrot"},
	"broccoli": {"broccolini", "broccoli-floret"},
	"spinach":  {"baby-spinach"},
	"mushroom": {"button-mushroom", "portobello", "shiitake", "cremini"},
	"lettuce":  {"romaine", "iceberg-lettuce"},
	"corn":     {"sweetcorn", "corn-kernel", "corn-on-the-cob"},
	"bean":     {"black-bean", "kidney-bean", "green-bean", "cannellini-bean", "chickpea"},
	"pea":      {"green-pea", "snow-pea", "snap-pea"},
	"basil":    {"fresh-basil", "thai-basil"},
	"oregano":  {"dried-oregano"},
	"thyme":    {"fresh-thyme", "dried-thyme"},
	"parsley":  {"flat-leaf-parsley", "curly-parsley"},
	"cilantro": {"coriander", "fresh-coriander"},
	"rosemary": {"fresh-rosemary"},
	"lemon":    {"lemon-juice", "lemon-zest"},
	"lime":     {"lime-juice", "lime-zest"},
	"orange":   {"orange-juice", "orange-zest"},
	"apple":    {"green-apple", "granny-smith"},
	"banana":   {"ripe-banana"},
	"berry":    {"strawberry", "blueberry", "raspberry", "blackberry"},
	"bread":    {"breadcrumb", "baguette", "sourdough", "white-bread"},
	"rice":     {"white-rice", "brown-rice", "basmati-rice", "jasmine-rice", "arborio-rice"},
	"pasta":    {"spaghetti", "penne", "fusilli", "macaroni", "linguine"},
	"noodle":   {"egg-noodle", "rice-noodle", "ramen-noodle"},
	"nut":      {"almond", "walnut", "cashew", "peanut", "pecan"},
	"seed":     {"sesame-seed", "sunflower-seed", "pumpkin-seed", "chia-seed"},
	"spice":    {"cumin", "paprika", "turmeric", "cinnamon", "nutmeg"},
	"herb":     {"mixed-herb", "italian-herb"},
	"vinegar":  {"balsamic-vinegar", "white-vinegar", "apple-cider-vinegar", "rice-vinegar"},
	"sauce":    {"soy-sauce", "tomato-sauce", "hot-sauce", "fish-sauce", "worcestershire-sauce"},
	"butter":   {"unsalted-butter", "salted-butter"},
	"egg":      {"egg-white", "egg-yolk"},
	"yogurt":   {"greek-yogurt", "plain-yogurt", "natural-yogurt"},
	"cream":    {"heavy-cream", "double-cream", "sour-cream", "whipping-cream"},
	"wine":     {"red-wine", "white-wine", "cooking-wine"},
	"stock":    {"chicken-stock", "beef-stock", "vegetable-stock"},
	"broth":    {"chicken-broth", "beef-broth", "vegetable-broth"},
	"chocolate": {"dark-chocolate", "milk-chocolate", "chocolate-chip", "cocoa-powder"},
}

// alternativeKeys holds the table keys in sorted order so substring
// fallback lookups produce a reproducible union.
var alternativeKeys = func() []string {
	keys := make([]string, 0, len(alternatives))
	for k := range alternatives {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()
