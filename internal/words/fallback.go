package words

// fallbackPool is the built-in word list used when no external list
// can be loaded. Mixes everyday words with harder abstract ones.
var fallbackPool = []string{
	// Everyday
	"cat", "dog", "house", "car", "book", "tree", "sun", "moon", "water", "food",
	"happy", "sad", "big", "small", "red", "blue", "green", "yellow", "fast", "slow",
	"hot", "cold", "up", "down", "left", "right", "yes", "no", "good", "bad",
	"friend", "family", "school", "work", "play", "sleep", "eat", "drink", "walk", "run",
	"music", "dance", "sing", "laugh", "smile", "cry", "think", "know", "see", "hear",

	// Medium
	"adventure", "mystery", "journey", "discovery", "challenge", "opportunity", "creativity",
	"imagination", "technology", "innovation", "tradition", "culture", "celebration",
	"communication", "relationship", "experience", "knowledge", "education", "development",
	"environment", "sustainability", "responsibility", "leadership", "teamwork", "collaboration",
	"achievement", "success", "failure", "mistake", "learning", "improvement", "progress",
	"freedom", "independence", "choice", "decision", "consequence", "result", "outcome",
	"possibility", "potential", "future", "present", "past", "memory", "history", "story",

	// Hard
	"philosophy", "psychology", "sociology", "anthropology", "archaeology", "meteorology",
	"astronomy", "astrophysics", "quantum", "relativity", "consciousness", "subconscious",
	"unconscious", "meditation", "mindfulness", "enlightenment", "transcendence", "nirvana",
	"karma", "dharma", "zen", "tao", "yin", "yang", "chakra", "aura", "energy", "vibration",
	"frequency", "resonance", "harmony", "balance", "equilibrium", "symmetry", "asymmetry",
	"paradox", "contradiction", "irony", "sarcasm", "satire", "allegory", "metaphor", "simile",
	"analogy", "comparison", "contrast", "juxtaposition", "oxymoron", "euphemism", "hyperbole",
}
