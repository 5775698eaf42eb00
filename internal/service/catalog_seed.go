package service

import "github.com/pageza/dishcovery/backend/internal/model"

func nutrition(calories, protein, carbs, fat string) []model.NutritionFact {
	return []model.NutritionFact{
		{Name: "Calories", Value: calories},
		{Name: "Protein", Value: protein},
		{Name: "Carbs", Value: carbs},
		{Name: "Fat", Value: fat},
	}
}

// SeedRecipes returns the built-in catalog.
func SeedRecipes() []model.Recipe {
	return []model.Recipe{
		{
			ID:          "1",
			Title:       "Classic Margherita Pizza",
			Cuisine:     "Italian",
			CookingTime: "30 mins",
			Ingredients: []string{"1 pizza dough", "1/2 cup tomato sauce", "200g fresh mozzarella", "Fresh basil leaves", "2 tbsp olive oil", "Salt to taste"},
			Instructions: []string{
				"Preheat the oven to 250°C with a pizza stone inside.",
				"Stretch the dough into a 12-inch round.",
				"Spread the tomato sauce, leaving a border for the crust.",
				"Tear the mozzarella over the sauce and drizzle with olive oil.",
				"Bake for 8-10 minutes until the crust is golden.",
				"Top with basil and a pinch of salt before serving.",
			},
			Tags:      []string{"Vegetarian", "Classic"},
			Nutrition: nutrition("420 kcal", "18g", "48g", "16g"),
		},
		{
			ID:          "2",
			Title:       "Creamy Mushroom Risotto",
			Cuisine:     "Italian",
			CookingTime: "40 mins",
			Ingredients: []string{"1 1/2 cups arborio rice", "300g mushrooms, sliced", "1 onion, diced", "2 cloves garlic", "1/2 cup white wine", "5 cups vegetable stock", "1/2 cup parmesan", "2 tbsp butter"},
			Instructions: []string{
				"Keep the stock warm in a saucepan.",
				"Saute the onion, garlic and mushrooms in butter until soft.",
				"Add the rice and toast for 2 minutes.",
				"Deglaze with white wine.",
				"Add stock one ladle at a time, stirring until absorbed.",
				"Stir in parmesan and season to taste.",
			},
			Tags:      []string{"Vegetarian", "Comfort Food"},
			Nutrition: nutrition("460 kcal", "12g", "58g", "14g"),
		},
		{
			ID:          "3",
			Title:       "Butter Chicken",
			Cuisine:     "Indian",
			CookingTime: "45 mins",
			Ingredients: []string{"500g chicken thighs", "1 cup yogurt", "2 tbsp garam masala", "1 can tomato puree", "1/2 cup cream", "3 tbsp butter", "1 tbsp ginger garlic paste", "Fresh cilantro"},
			Instructions: []string{
				"Marinate the chicken in yogurt, garam masala and ginger garlic paste.",
				"Sear the chicken in butter until browned.",
				"Add tomato puree and simmer for 15 minutes.",
				"Stir in the cream and simmer until thick.",
				"Garnish with cilantro and serve with rice or naan.",
			},
			Tags:      []string{"Spicy", "Gluten-Free"},
			Nutrition: nutrition("490 kcal", "24g", "32g", "22g"),
		},
		{
			ID:          "4",
			Title:       "Chana Masala",
			Cuisine:     "Indian",
			CookingTime: "35 mins",
			Ingredients: []string{"2 cans chickpeas", "1 onion, chopped", "2 tomatoes, chopped", "1 tbsp ginger", "2 tsp cumin seeds", "1 tbsp chana masala spice", "Fresh cilantro", "1 lemon"},
			Instructions: []string{
				"Toast the cumin seeds in hot oil.",
				"Cook the onion and ginger until golden.",
				"Add tomatoes and spices and cook down to a paste.",
				"Add chickpeas with a splash of water and simmer for 15 minutes.",
				"Finish with lemon juice and cilantro.",
			},
			Tags:      []string{"Vegan", "Healthy"},
			Nutrition: nutrition("350 kcal", "14g", "52g", "9g"),
		},
		{
			ID:          "5",
			Title:       "Chicken Tacos",
			Cuisine:     "Mexican",
			CookingTime: "25 mins",
			Ingredients: []string{"400g chicken breast", "8 corn tortillas", "1 avocado", "1 lime", "1/2 red onion", "1 tsp chili powder", "Fresh cilantro", "Salsa"},
			Instructions: []string{
				"Season the chicken with chili powder and salt.",
				"Grill the chicken and slice thinly.",
				"Warm the tortillas in a dry pan.",
				"Fill with chicken, avocado, onion and salsa.",
				"Finish with lime and cilantro.",
			},
			Tags:      []string{"Quick", "Gluten-Free"},
			Nutrition: nutrition("380 kcal", "24g", "36g", "14g"),
		},
		{
			ID:          "6",
			Title:       "Black Bean Enchiladas",
			Cuisine:     "Mexican",
			CookingTime: "45 mins",
			Ingredients: []string{"2 cans black beans", "8 flour tortillas", "2 cups enchilada sauce", "1 cup shredded cheese", "1 bell pepper", "1 onion", "1 tsp cumin"},
			Instructions: []string{
				"Saute the pepper and onion with cumin.",
				"Mix in the beans and mash lightly.",
				"Fill and roll the tortillas and place them in a baking dish.",
				"Cover with enchilada sauce and cheese.",
				"Bake at 190°C for 20 minutes.",
			},
			Tags:      []string{"Vegetarian", "Comfort Food"},
			Nutrition: nutrition("470 kcal", "20g", "58g", "15g"),
		},
		{
			ID:          "7",
			Title:       "Kung Pao Chicken",
			Cuisine:     "Chinese",
			CookingTime: "30 mins",
			Ingredients: []string{"500g chicken breast, cubed", "1/2 cup roasted peanuts", "8 dried red chilies", "2 tbsp soy sauce", "1 tbsp rice vinegar", "1 tsp sichuan peppercorns", "3 green onions", "1 tbsp cornstarch"},
			Instructions: []string{
				"Toss the chicken with soy sauce and cornstarch.",
				"Stir-fry the chilies and peppercorns until fragrant.",
				"Add the chicken and cook until browned.",
				"Add vinegar, peanuts and green onions.",
				"Toss until glossy and serve with rice.",
			},
			Tags:      []string{"Spicy", "Quick"},
			Nutrition: nutrition("440 kcal", "24g", "30g", "21g"),
		},
		{
			ID:          "8",
			Title:       "Vegetable Fried Rice",
			Cuisine:     "Chinese",
			CookingTime: "20 mins",
			Ingredients: []string{"3 cups cooked rice", "2 eggs", "1 cup mixed vegetables", "2 tbsp soy sauce", "1 tsp sesame oil", "2 green onions", "2 cloves garlic"},
			Instructions: []string{
				"Scramble the eggs in a hot wok and set aside.",
				"Stir-fry the garlic and vegetables.",
				"Add the rice and fry until slightly crisp.",
				"Season with soy sauce and sesame oil.",
				"Fold in the eggs and green onions.",
			},
			Tags:      []string{"Vegetarian", "Quick", "Easy"},
			Nutrition: nutrition("360 kcal", "11g", "56g", "10g"),
		},
		{
			ID:          "9",
			Title:       "Chicken Teriyaki",
			Cuisine:     "Japanese",
			CookingTime: "25 mins",
			Ingredients: []string{"500g chicken thighs", "1/4 cup soy sauce", "2 tbsp mirin", "1 tbsp sugar", "1 tbsp sake", "1 tsp sesame seeds", "Steamed rice"},
			Instructions: []string{
				"Pan-fry the chicken skin side down until crisp.",
				"Mix soy sauce, mirin, sake and sugar.",
				"Pour the sauce over the chicken and reduce until sticky.",
				"Slice and sprinkle with sesame seeds.",
				"Serve over steamed rice.",
			},
			Tags:      []string{"Quick", "Easy"},
			Nutrition: nutrition("430 kcal", "24g", "40g", "15g"),
		},
		{
			ID:          "10",
			Title:       "Pad Thai",
			Cuisine:     "Thai",
			CookingTime: "30 mins",
			Ingredients: []string{"200g rice noodles", "200g shrimp", "2 eggs", "1 cup bean sprouts", "3 tbsp tamarind paste", "2 tbsp fish sauce", "1/4 cup crushed peanuts", "1 lime"},
			Instructions: []string{
				"Soak the noodles in warm water until pliable.",
				"Stir-fry the shrimp and push to one side.",
				"Scramble the eggs in the wok.",
				"Add noodles, tamarind and fish sauce and toss.",
				"Add bean sprouts and top with peanuts and lime.",
			},
			Tags:      []string{"Gluten-Free"},
			Nutrition: nutrition("480 kcal", "22g", "58g", "14g"),
		},
		{
			ID:          "11",
			Title:       "Green Curry with Tofu",
			Cuisine:     "Thai",
			CookingTime: "30 mins",
			Ingredients: []string{"400g firm tofu", "2 tbsp green curry paste", "1 can coconut milk", "1 zucchini", "1 red bell pepper", "Thai basil", "1 tbsp soy sauce"},
			Instructions: []string{
				"Fry the curry paste in a little coconut milk.",
				"Add the rest of the coconut milk and bring to a simmer.",
				"Add tofu and vegetables and cook for 10 minutes.",
				"Season with soy sauce and stir in Thai basil.",
			},
			Tags:      []string{"Vegan", "Spicy"},
			Nutrition: nutrition("410 kcal", "16g", "30g", "22g"),
		},
		{
			ID:          "12",
			Title:       "Greek Salad",
			Cuisine:     "Mediterranean",
			CookingTime: "15 mins",
			Ingredients: []string{"3 tomatoes", "1 cucumber", "1/2 red onion", "200g feta cheese", "1/2 cup kalamata olives", "3 tbsp olive oil", "1 tsp dried oregano"},
			Instructions: []string{
				"Chop the tomatoes, cucumber and onion.",
				"Combine with olives in a bowl.",
				"Top with a slab of feta.",
				"Dress with olive oil and oregano.",
			},
			Tags:      []string{"Vegetarian", "Healthy", "Quick"},
			Nutrition: nutrition("310 kcal", "10g", "30g", "20g"),
		},
		{
			ID:          "13",
			Title:       "Coq au Vin",
			Cuisine:     "French",
			CookingTime: "1 hour 30 mins",
			Ingredients: []string{"1 whole chicken, cut up", "2 cups red wine", "150g bacon lardons", "250g mushrooms", "12 pearl onions", "2 cloves garlic", "2 tbsp flour", "Fresh thyme"},
			Instructions: []string{
				"Brown the bacon and set aside.",
				"Brown the chicken pieces in the bacon fat.",
				"Add garlic and flour and cook for a minute.",
				"Pour in the wine, add thyme and simmer covered for an hour.",
				"Add mushrooms, pearl onions and bacon and cook for 20 minutes more.",
			},
			Tags:      []string{"Classic", "Comfort Food"},
			Nutrition: nutrition("495 kcal", "24g", "32g", "22g"),
		},
		{
			ID:          "14",
			Title:       "Bibimbap",
			Cuisine:     "Korean",
			CookingTime: "40 mins",
			Ingredients: []string{"2 cups cooked rice", "200g beef", "1 carrot", "1 zucchini", "2 cups spinach", "4 eggs", "2 tbsp gochujang", "1 tbsp sesame oil"},
			Instructions: []string{
				"Marinate and stir-fry the beef.",
				"Saute each vegetable separately.",
				"Fry the eggs sunny side up.",
				"Arrange everything over rice.",
				"Serve with gochujang and sesame oil.",
			},
			Tags:      []string{"Spicy", "Healthy"},
			Nutrition: nutrition("470 kcal", "23g", "56g", "16g"),
		},
		{
			ID:          "15",
			Title:       "Falafel Wraps",
			Cuisine:     "Middle Eastern",
			CookingTime: "35 mins",
			Ingredients: []string{"2 cups dried chickpeas, soaked", "1 onion", "Fresh parsley", "2 tsp cumin", "4 pita breads", "1/2 cup tahini", "1 cucumber", "2 tomatoes"},
			Instructions: []string{
				"Blend the chickpeas, onion, parsley and cumin into a coarse paste.",
				"Shape into small patties.",
				"Fry until deep golden.",
				"Stuff the pitas with falafel, cucumber and tomato.",
				"Drizzle with tahini.",
			},
			Tags:      []string{"Vegan", "Healthy"},
			Nutrition: nutrition("450 kcal", "17g", "54g", "18g"),
		},
		{
			ID:          "16",
			Title:       "Classic Cheeseburger",
			Cuisine:     "American",
			CookingTime: "20 mins",
			Ingredients: []string{"500g ground beef", "4 burger buns", "4 slices cheddar cheese", "1 tomato", "Lettuce", "1 onion", "Pickles", "Ketchup and mustard"},
			Instructions: []string{
				"Shape the beef into four patties and season well.",
				"Grill for 3-4 minutes per side.",
				"Melt the cheese on the patties during the last minute.",
				"Toast the buns.",
				"Assemble with lettuce, tomato, onion and pickles.",
			},
			Tags:      []string{"Classic", "Quick"},
			Nutrition: nutrition("495 kcal", "24g", "36g", "22g"),
		},
		{
			ID:          "17",
			Title:       "Seafood Paella",
			Cuisine:     "Spanish",
			CookingTime: "50 mins",
			Ingredients: []string{"2 cups bomba rice", "300g shrimp", "300g mussels", "1 pinch saffron", "1 red bell pepper", "1 onion", "4 cups fish stock", "1 tsp smoked paprika"},
			Instructions: []string{
				"Saute the onion and pepper in a wide pan.",
				"Stir in the rice, paprika and saffron.",
				"Pour in the stock and simmer without stirring for 15 minutes.",
				"Nestle in the shrimp and mussels.",
				"Cook until the seafood is done and a crust forms.",
				"Rest for 5 minutes before serving.",
			},
			Tags:      []string{"Gluten-Free", "Dairy-Free"},
			Nutrition: nutrition("460 kcal", "24g", "58g", "10g"),
		},
	}
}
