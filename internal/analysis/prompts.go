package analysis

import "fmt"

// Prompt is a system and user message pair for a text generator.
type Prompt struct {
	System string
	User   string
}

// PredictionHorizonDays is the horizon of the price direction commentary.
const PredictionHorizonDays = 5

// PriceDirectionPrompt asks for short-term price direction commentary on a
// context produced by BuildContext.
func PriceDirectionPrompt(context string) Prompt {
	return Prompt{
		System: "You are an expert in technical analysis and stock price forecasting. Analyze the data and give a forecast.",
		User: fmt.Sprintf("Based on the following data, describe the likely price movement of the stock over the next %d days:\n\n%s",
			PredictionHorizonDays, context),
	}
}

// InsightsPrompt asks for a brief company analysis on a context produced by
// BuildOverviewContext.
func InsightsPrompt(context string) Prompt {
	return Prompt{
		System: "You are a financial analyst. Analyze the company data and provide brief insights.",
		User:   "Based on the following data, provide a brief analysis of the company and recommendations:\n\n" + context,
	}
}

// SentimentPrompt asks for the tone and market impact of free text.
func SentimentPrompt(text string) Prompt {
	return Prompt{
		System: "You are an expert in analyzing financial news. Determine the tone of the text and its impact on the market.",
		User: "Analyze the following text and determine its tone (positive/negative/neutral) " +
			"and its impact on the market (strong/medium/weak):\n\n" + text,
	}
}
