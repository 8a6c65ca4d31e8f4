package catalog

// BuiltinThemes returns the built-in themed catalogs. Theme names are
// reserved: the custom theme registry refuses to shadow or delete them.
func BuiltinThemes() map[string]Catalog {
	return map[string]Catalog{
		"motivational": {
			"fortune": {
				"Every setback today is setting up your comeback.",
				"You are one decision away from a completely different week.",
				"Your persistence is about to outlast the obstacle.",
			},
			"career": {
				"The work nobody sees today becomes the win everybody sees soon.",
				"Raise your hand for the hard thing; you're readier than you feel.",
			},
			"activity": {
				"Start before you're ready; momentum will catch you.",
				"One focused hour today beats a perfect plan tomorrow.",
			},
		},
		"holiday": {
			"fortune": {
				"A festive surprise is already wrapped and waiting for you.",
				"Generosity you show this season returns twice over.",
			},
			"relationship": {
				"A holiday gathering will rekindle a treasured bond.",
				"The card you almost don't send will matter the most.",
			},
			"activity": {
				"Baking something sweet will sweeten more than dessert.",
				"An old tradition will feel brand new this year.",
			},
		},
		"spooky": {
			"fortune": {
				"Something you thought was lost will reappear mysteriously.",
				"A shiver of intuition tonight is worth trusting.",
			},
			"weather": {
				"A fog will lift to reveal exactly what you needed to see.",
				"Listen to the wind tonight; it carries a hint.",
			},
			"activity": {
				"A candlelit evening will spark an eerie-good idea.",
				"Tell a ghost story; the laughter will be real.",
			},
		},
		"adventure": {
			"fortune": {
				"An unplanned detour will become the best part of your map.",
				"Fortune favors the packed bag; keep yours ready.",
			},
			"activity": {
				"Say yes to the invitation that scares you a little.",
				"A trail you've never taken is shorter than it looks.",
			},
			"career": {
				"A bold pitch will land better than a safe one.",
			},
		},
		"spring": {
			"fortune": {
				"Something you planted long ago is finally sprouting.",
				"Fresh starts bloom easily for you this week.",
			},
			"health": {
				"Open a window; the fresh air will reset your energy.",
				"A lighter routine will put a spring in your step.",
			},
			"relationship": {
				"A friendship will blossom from a casual hello.",
				"Spring cleaning a grudge will lighten two hearts.",
			},
		},
		"summer": {
			"fortune": {
				"Long days bring you one golden unplanned hour.",
				"Your luck peaks when the sun does.",
			},
			"activity": {
				"An outdoor meal will taste like a small holiday.",
				"Water — pool, lake, or sprinkler — holds your best afternoon.",
			},
			"relationship": {
				"A summer evening will turn acquaintances into friends.",
				"Postcards beat texts this month; send one.",
			},
		},
		"fall": {
			"fortune": {
				"As the leaves turn, so does your luck — for the better.",
				"Harvest season rewards what you tended quietly.",
			},
			"creative": {
				"Crisp air will sharpen a fuzzy idea into a plan.",
				"An autumn walk will hand you your next project.",
			},
			"career": {
				"The quarter's quiet work is about to be recognized.",
				"A cozy desk and a warm drink unlock your focus.",
			},
		},
		"winter": {
			"fortune": {
				"A quiet season is gathering momentum you can't see yet.",
				"Warmth finds you exactly when you need it.",
			},
			"health": {
				"An early, cozy night restores more than sleep.",
				"Soup and a slow morning are this week's medicine.",
			},
			"relationship": {
				"Shared blankets and long talks deepen an old bond.",
				"A snowed-in day becomes a story you'll retell.",
			},
		},
		"zodiac": {
			"aries": {
				"Your boldness opens a door others thought was locked.",
				"Channel the charge; aim it at one goal today.",
			},
			"taurus": {
				"Steady effort turns into visible progress this week.",
				"Comfort invested in others returns to you doubled.",
			},
			"gemini": {
				"A conversation splits into two great opportunities.",
				"Your curiosity lands on exactly the right question.",
			},
			"cancer": {
				"Home holds the answer you've been seeking outside.",
				"Your care for someone quietly changes their week.",
			},
			"leo": {
				"The spotlight finds you; you'll deserve it.",
				"Your warmth draws an unexpected ally.",
			},
			"virgo": {
				"A detail only you notice saves the day.",
				"Order you create now pays off twice later.",
			},
			"libra": {
				"Balance you broker today earns lasting goodwill.",
				"Beauty in a small thing restores your perspective.",
			},
			"scorpio": {
				"What you sense beneath the surface proves true.",
				"Your focus cuts through a knot others gave up on.",
			},
			"sagittarius": {
				"A far-fetched plan is closer than it looks.",
				"Honest words land softly and travel far.",
			},
			"capricorn": {
				"The summit is nearer; keep the steady pace.",
				"Discipline today buys freedom this weekend.",
			},
			"aquarius": {
				"Your odd idea is the room's best idea.",
				"Helping the group quietly advances your own cause.",
			},
			"pisces": {
				"A daydream contains a perfectly practical step.",
				"Your empathy turns a stranger into a friend.",
			},
		},
	}
}
