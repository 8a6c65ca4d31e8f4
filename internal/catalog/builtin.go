package catalog

// Default returns the built-in prediction catalog.
func Default() Catalog {
	return Catalog{
		"fortune": {
			"You will find unexpected joy in a small moment today.",
			"A challenge you face will lead to personal growth.",
			"Someone will appreciate your kindness more than you know.",
			"An opportunity is closer than you think.",
			"Your patience will be rewarded soon.",
			"A creative idea will strike you at an unusual time.",
			"Trust your instincts on an important decision.",
			"A friendship will deepen in an unexpected way.",
		},
		"weather": {
			"Expect sunshine in your mood, regardless of the clouds.",
			"A storm of ideas will clear the air for new thinking.",
			"Calm winds ahead will bring peace of mind.",
			"Rainbows of opportunity await after any brief troubles.",
		},
		"activity": {
			"Today is a good day to start something new.",
			"Take a moment to appreciate what you have accomplished.",
			"Reach out to someone you haven't spoken to in a while.",
			"Learn something small but interesting today.",
			"Share your knowledge with someone who could benefit.",
		},
		"career": {
			"A skill you practice quietly will soon be noticed.",
			"An unexpected conversation will open a professional door.",
			"The task you keep postponing holds a pleasant surprise.",
			"Your next big step starts with a small question.",
			"A colleague will seek your advice; give it generously.",
		},
		"relationship": {
			"A small gesture will mean more than a grand one.",
			"Someone close to you is waiting for you to ask.",
			"An old connection will resurface with good news.",
			"Listening will bring you closer than speaking today.",
			"A shared laugh will resolve a lingering tension.",
		},
		"health": {
			"Your body will thank you for one small change.",
			"Rest is productive; tonight proves it.",
			"A short walk will untangle a long thought.",
			"Drinking more water today pays off tomorrow.",
			"An early night will give you a brilliant morning.",
		},
		"creative": {
			"An idea you dismissed deserves a second look.",
			"Your next creation begins with a borrowed spark.",
			"Something unfinished is closer to done than you think.",
			"Inspiration will arrive disguised as a distraction.",
			"Make something small today; it will grow.",
		},
	}
}

// TimePools returns prediction strings keyed by time-of-day slot.
// Entries enter the time-aware pool under the label "time:<slot>".
func TimePools() map[string][]string {
	return map[string][]string{
		"morning": {
			"The morning light favors fresh starts; begin now.",
			"Your first idea before noon will be your best one.",
			"Breakfast conversation carries an unexpected clue.",
		},
		"afternoon": {
			"The afternoon slump hides a burst of clarity.",
			"A midday pause will reveal what the morning obscured.",
			"Someone will brighten your afternoon without trying.",
		},
		"evening": {
			"This evening rewards those who slow down.",
			"A sunset thought will settle a daytime doubt.",
			"The evening holds a small, satisfying ending.",
		},
		"night": {
			"A late-night idea is worth writing down.",
			"The quiet hours will answer a noisy question.",
			"Sleep on it; the answer arrives by morning.",
		},
	}
}

// DayPools returns prediction strings keyed by day type.
// Entries enter the time-aware pool under the label "day:<slot>".
func DayPools() map[string][]string {
	return map[string][]string{
		"weekday": {
			"A routine task will go unusually smoothly today.",
			"Between meetings hides a moment worth savoring.",
			"Today's small wins add up to a big week.",
		},
		"weekend": {
			"Unplanned hours will become your favorite ones.",
			"A leisurely start leads to a surprising discovery.",
			"The weekend holds one conversation you'll remember.",
		},
	}
}
