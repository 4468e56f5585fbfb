package copywriting

import "github.com/jonathan/cardcopy/internal/types"

// variant is one hand-written fallback variant. {{.Subject}} is replaced when present.
type variant struct {
	Headline     string
	BodyText     string
	CallToAction string
}

// styleTemplates holds the subject and no-subject variants for one style.
type styleTemplates struct {
	WithSubject    variant
	WithoutSubject variant
}

var fallbackTemplates = map[types.Style]styleTemplates{
	types.StyleProfessional: {
		WithSubject: variant{
			Headline: "{{.Subject}}: Built for Measurable Results",
			BodyText: "{{.Subject}} gives organizations a clear, practical way to move their most important goals forward. It brings structure to work that is often scattered across teams and tools.\n\n" +
				"Behind the scenes, careful planning meets dependable execution. Every step is designed to be repeatable, so progress holds up under real-world pressure.\n\n" +
				"Organizations that adopt this approach report faster decisions and fewer surprises. Leaders gain visibility, while staff spend less time on avoidable rework.\n\n" +
				"Looking ahead, {{.Subject}} is positioned to grow alongside your ambitions. Now is a good moment to explore what it can do for you.",
			CallToAction: "Request a Consultation",
		},
		WithoutSubject: variant{
			Headline: "Clear Strategy, Dependable Results",
			BodyText: "Great outcomes start with a plan that everyone can follow. Our approach brings structure to work that is often scattered across teams and tools.\n\n" +
				"Behind the scenes, careful planning meets dependable execution. Every step is designed to be repeatable, so progress holds up under real-world pressure.\n\n" +
				"Organizations that adopt this way of working report faster decisions and fewer surprises. Leaders gain visibility, while staff spend less time on avoidable rework.\n\n" +
				"Looking ahead, the same foundation scales as your ambitions grow. Now is a good moment to see what it can do for you.",
			CallToAction: "Request a Consultation",
		},
	},
	types.StyleCasual: {
		WithSubject: variant{
			Headline: "Say Hello to {{.Subject}}",
			BodyText: "Meet {{.Subject}}, the kind of idea that makes everyday life a little easier. No jargon and no fuss, just something that works.\n\n" +
				"Here is how it goes: you pick what matters, and the rest falls into place without a long manual. Most people get the hang of it in an afternoon.\n\n" +
				"Friends who tried it say they finally have time for the fun stuff again. Small wins add up quickly when the busywork disappears.\n\n" +
				"We are only getting started, and {{.Subject}} keeps getting better. Come along for the ride!",
			CallToAction: "Give It a Try",
		},
		WithoutSubject: variant{
			Headline: "Something Good Is Coming Your Way",
			BodyText: "Some ideas just click, and this is one of them. No jargon and no fuss, just something that works.\n\n" +
				"Here is how it goes: you pick what matters, and the rest falls into place without a long manual. Most people get the hang of it in an afternoon.\n\n" +
				"Friends who tried it say they finally have time for the fun stuff again. Small wins add up quickly when the busywork disappears.\n\n" +
				"We are only getting started, and there is plenty more on the way. Come along for the ride!",
			CallToAction: "Give It a Try",
		},
	},
	types.StyleCreative: {
		WithSubject: variant{
			Headline: "{{.Subject}}, Reimagined",
			BodyText: "Picture a blank canvas, then imagine {{.Subject}} filling it with color. Ideas that once felt out of reach start to take shape.\n\n" +
				"Every detail is a brushstroke. Small choices layer together until something unexpected and memorable appears.\n\n" +
				"People who encounter it tend to remember how it made them feel. That spark lingers long after the first impression fades.\n\n" +
				"Tomorrow holds an even bigger canvas, and {{.Subject}} is ready to fill it. Step inside and let curiosity lead the way.",
			CallToAction: "Start Exploring",
		},
		WithoutSubject: variant{
			Headline: "Where Bold Ideas Take Shape",
			BodyText: "Picture a blank canvas waiting for its first splash of color. Ideas that once felt out of reach start to take shape.\n\n" +
				"Every detail is a brushstroke. Small choices layer together until something unexpected and memorable appears.\n\n" +
				"People who encounter it tend to remember how it made them feel. That spark lingers long after the first impression fades.\n\n" +
				"Tomorrow holds an even bigger canvas, full of possibilities nobody has sketched yet. Step inside and let curiosity lead the way.",
			CallToAction: "Start Exploring",
		},
	},
	types.StyleTechnical: {
		WithSubject: variant{
			Headline: "{{.Subject}}: How It Works and Why It Holds Up",
			BodyText: "{{.Subject}} is built on a modular architecture with clearly defined interfaces between components. Each part can be tested, replaced or scaled without touching the rest.\n\n" +
				"Data flows through a predictable pipeline with validation at every boundary. Failures are isolated early, which keeps behavior consistent under load.\n\n" +
				"In practice, this design reduces integration effort and shortens the path from prototype to production. Operators get clear metrics instead of guesswork.\n\n" +
				"Future iterations of {{.Subject}} will extend the same principles to new platforms. Review the documentation to plan your integration.",
			CallToAction: "Read the Documentation",
		},
		WithoutSubject: variant{
			Headline: "Engineered for Reliability at Scale",
			BodyText: "This system is built on a modular architecture with clearly defined interfaces between components. Each part can be tested, replaced or scaled without touching the rest.\n\n" +
				"Data flows through a predictable pipeline with validation at every boundary. Failures are isolated early, which keeps behavior consistent under load.\n\n" +
				"In practice, this design reduces integration effort and shortens the path from prototype to production. Operators get clear metrics instead of guesswork.\n\n" +
				"Future iterations will extend the same principles to new platforms. Review the documentation to plan your integration.",
			CallToAction: "Read the Documentation",
		},
	},
	types.StylePersuasive: {
		WithSubject: variant{
			Headline: "Why {{.Subject}} Deserves Your Attention Today",
			BodyText: "Imagine getting more done with less effort, starting this week. {{.Subject}} makes that possible by removing the friction that slows you down.\n\n" +
				"The idea is simple: focus your energy where it counts and let a reliable process handle the rest. You stay in control while the heavy lifting happens automatically.\n\n" +
				"Early adopters are already seeing the difference in their results. Every day you wait is a day of progress left on the table.\n\n" +
				"Opportunities like {{.Subject}} do not stay open forever. Take the first step now and see the impact for yourself.",
			CallToAction: "Get Started Today",
		},
		WithoutSubject: variant{
			Headline: "Stop Waiting and Start Winning",
			BodyText: "Imagine getting more done with less effort, starting this week. The right approach makes that possible by removing the friction that slows you down.\n\n" +
				"The idea is simple: focus your energy where it counts and let a reliable process handle the rest. You stay in control while the heavy lifting happens automatically.\n\n" +
				"Early adopters are already seeing the difference in their results. Every day you wait is a day of progress left on the table.\n\n" +
				"Opportunities like this do not stay open forever. Take the first step now and see the impact for yourself.",
			CallToAction: "Get Started Today",
		},
	},
}
