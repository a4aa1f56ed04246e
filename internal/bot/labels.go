package bot

const (
	CmdStart   = "/start"
	CmdHelp    = "/help"
	CmdRestart = "/restart"
)

// Main menu.
const (
	BtnMyMatches     = "👤 My matches"
	BtnHeroes        = "📊 Heroes"
	BtnHeroInfo      = "🔍 Hero info"
	BtnMyStats       = "📈 My stats"
	BtnPlayerMatches = "🎮 Player matches"
	BtnRefresh       = "🔄 Refresh data"
	BtnHelp          = "ℹ️ Help"
)

// Prompt keyboards.
const (
	BtnCancel       = "❌ Cancel"
	BtnRandomPlayer = "🎲 Random player"
	BtnRandomHero   = "🎲 Random hero"
	BtnHeroMyStats  = "👤 My stats on this hero"
	BtnHeroGeneral  = "📊 General hero stats"
	BtnBackToHeroes = "⬅️ Back to heroes"
)

// Inline navigation callbacks.
const (
	CbNext    = "matches_next"
	CbPrev    = "matches_prev"
	CbRefresh = "matches_refresh"
	CbNew     = "matches_new"
	CbBack    = "matches_back"
)

const (
	msgWelcome = "👋 Welcome to the Dota stats bot!\n\n" +
		"Browse your match history, look up other players and check hero statistics.\n" +
		"Use the menu below to get started."
	msgHelp = "ℹ️ Help\n\n" +
		BtnMyMatches + " - your match history\n" +
		BtnHeroes + " - all heroes with their stats\n" +
		BtnHeroInfo + " - details for one hero\n" +
		BtnMyStats + " - your overall statistics\n" +
		BtnPlayerMatches + " - match history of another player\n" +
		BtnRefresh + " - record a new match\n\n" +
		"Commands: /start, /restart, /help"
	msgMainMenu        = "🏠 Main menu"
	msgCancelled       = "❌ Cancelled. Back to the main menu."
	msgAskPlayer       = "🎮 Enter a player name or pick a random player:"
	msgAskHero         = "🔍 Enter a hero id (1-20), a hero name, or pick one below:"
	msgHeroNotFound    = "❌ Hero not found. Try an id from 1 to 20 or part of the hero's name."
	msgPickHeroDetail  = "Please choose one of the options below."
	msgUnknown         = "🤔 I don't understand that. Please use the menu."
	msgNoMatches       = "No matches yet. Use " + BtnRefresh + " to play one!"
	msgPastTheEnd      = "No more matches on this page."
	msgSessionExpired  = "⌛ Session expired. Open the match list again."
	msgUnavailable     = "⚠️ The stats server is unavailable right now. Please try again later."
	msgApology         = "😔 Sorry, something went wrong. Please try again."
	msgMatchAdded      = "✅ New match recorded!"
	msgHistoryRenewed  = "History regenerated"
	msgUnknownCallback = "Unknown action"
)
