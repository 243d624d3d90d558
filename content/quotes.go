// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package content

type quote struct {
	text   string
	author string
}

// quoteForDay returns the quote shown on the given day of year. The
// table is shorter than a year, so late days wrap around.
func quoteForDay(dayOfYear int) quote {
	return quotes[dayOfYear%len(quotes)]
}

// Sourced from quotable.io.
var quotes = []quote{
	{"In the depth of winter, I finally learned that there was within me an invincible summer.", "Albert Camus"},
	{"To follow, without halt, one aim: There is the secret of success.", "Anna Pavlova"},
	{"It is never too late to be what you might have been.", "George Eliot"},
	{"Pick battles big enough to matter, small enough to win.", "Jonathan Kozol"},
	{"Who sows virtue reaps honor.", "Leonardo da Vinci"},
	{"Nobody will believe in you unless you believe in yourself.", "Liberace"},
	{"Each day provides its own gifts.", "Marcus Aurelius"},
	{"Don't wait. The time will never be just right.", "Napoleon Hill"},
	{"Do not go where the path may lead, go instead where there is no path and leave a trail.", "Ralph Waldo Emerson"},
	{"Nothing great was ever achieved without enthusiasm.", "Ralph Waldo Emerson"},
	{"If you love someone, set them free.", "Richard Bach"},
	{"There is no duty we so underrate as the duty of being happy.", "Robert Louis Stevenson"},
	{"These days people seek knowledge, not wisdom.", "Vernon Cooper"},
	{"Short words are best and the old words when short are best of all.", "Winston Churchill"},
	{"Applause is a receipt, not a bill.", "Dale Carnegie"},
	{"Never interrupt someone doing what you said couldn't be done.", "Amelia Earhart"},
	{"Some of the best lessons we ever learn are learned from past mistakes.", "Dale Turner"},
	{"Every friendship goes through ups and downs.", "Mariella Frostrup"},
	{"Do something wonderful, people may imitate it.", "Albert Schweitzer"},
	{"As you think, so shall you become.", "Bruce Lee"},
	{"The universe is full of magical things, patiently waiting for our wits to grow sharper.", "Eden Phillpotts"},
	{"Those who cannot learn from history are doomed to repeat it.", "George Santayana"},
	{"Every adversity carries with it the seed of an equal or greater benefit.", "Napoleon Hill"},
	{"Well done is better than well said.", "Benjamin Franklin"},
	{"We must not allow ourselves to become like the system we oppose.", "Desmond Tutu"},
	{"Do not give your attention to what others do; give it to what you do.", "Dhammapada"},
	{"People grow through experience if they meet life honestly and courageously.", "Eleanor Roosevelt"},
	{"If you wish to be a writer, write.", "Epictetus"},
	{"But man is not made for defeat.", "Ernest Hemingway"},
	{"You can't shake hands with a clenched fist.", "Indira Gandhi"},
	{"You can't stop the waves, but you can learn to surf.", "Jon Kabat-Zinn"},
	{"If you correct your mind, the rest of your life will fall into place.", "Laozi"},
	{"Imagination is the highest kite one can fly.", "Lauren Bacall"},
	{"I never see what has been done; I only see what remains to be done.", "Marie Curie"},
	{"No man can succeed in a line of endeavor which he does not like.", "Napoleon Hill"},
	{"By believing passionately in something that does not yet exist, we create it.", "Nikos Kazantzakis"},
	{"The meaning I picked, the one that changed my life: Overcome fear, behold wonder.", "Richard Bach"},
	{"It's so simple to be wise. Just think of something stupid to say and then don't.", "Sam Levenson"},
	{"Everything you are against weakens you. Everything you are for empowers you.", "Wayne Dyer"},
	{"Do more than dream: work.", "William Arthur Ward"},
	{"The function of wisdom is to discriminate between good and evil.", "Cicero"},
	{"Genius unrefined resembles a flash of lightning, but wisdom is like the sun.", "Franz Grillparzer"},
	{"The greatest healing therapy is friendship and love.", "Hubert Humphrey"},
	{"Those that know, do. Those that understand, teach.", "Aristotle"},
	{"We need to find the courage to say NO to things not serving us.", "Barbara De Angelis"},
	{"We must learn our limits. We are all something, but none of us are everything.", "Blaise Pascal"},
	{"Choose a job you love, and you will never have to work a day in your life.", "Confucius"},
	{"They must often change, who would be constant in happiness or wisdom.", "Confucius"},
	{"Respect should be earned by actions, and not acquired by years.", "Frank Lloyd Wright"},
	{"We are all inclined to judge ourselves by our ideals; others, by their acts.", "Harold Nicolson"},
	{"Correction does much, but encouragement does more.", "Johann Wolfgang von Goethe"},
	{"All the great performers I have worked with are fueled by a personal dream.", "John Eliot"},
	{"Beauty is not in the face; beauty is a light in the heart.", "Kahlil Gibran"},
	{"You were not born a winner, and you were not born a loser.", "Lou Holtz"},
	{"What we achieve inwardly will change outer reality.", "Plutarch"},
	{"Our strength grows out of our weaknesses.", "Ralph Waldo Emerson"},
	{"Things that were hard to bear are sweet to remember.", "Seneca the Younger"},
	{"The supreme art of war is to subdue the enemy without fighting.", "Sun Tzu"},
	{"When people are like each other they tend to like each other.", "Tony Robbins"},
	{"You have enemies? Good. That means you've stood up for something.", "Winston Churchill"},
	{"When fate hands us a lemon, let's try to make lemonade.", "Dale Carnegie"},
	{"One must be fond of people and trust them if one is not to make a mess of life.", "E. M. Forster"},
	{"All serious daring starts from within.", "Harriet Beecher Stowe"},
	{"Trouble is only opportunity in work clothes.", "Henry J. Kaiser"},
	{"Love is the flower you've got to let grow.", "John Lennon"},
	{"Quality is never an accident; it is always the result of intelligent effort.", "John Ruskin"},
	{"We shall never know all the good that a simple smile can do.", "Mother Teresa"},
	{"Fear not for the future, weep not for the past.", "Percy Bysshe Shelley"},
	{"Memory is the mother of all wisdom.", "Samuel Johnson"},
	{"Life is the flower for which love is the honey.", "Victor Hugo"},
	{"Courage is what it takes to stand up and speak; courage is also what it takes to sit down and listen.", "Winston Churchill"},
	{"Never, never, never give up.", "Winston Churchill"},
	{"The key is to keep company only with people who uplift you.", "Epictetus"},
	{"It's the little details that are vital. Little things make big things happen.", "John Wooden"},
	{"If you don't know where you are going, any road will get you there.", "Lewis Carroll"},
	{"Habit, if not resisted, soon becomes necessity.", "Augustine of Hippo"},
	{"However rare true love may be, it is less so than true friendship.", "François de La Rochefoucauld"},
	{"True friendship is like sound health; the value of it is seldom known until it is lost.", "Charles Caleb Colton"},
	{"What you do not want done to yourself, do not do to others.", "Confucius"},
	{"When you see a man of worth, think of how you may emulate him.", "Confucius"},
	{"A successful person is one who can lay a firm foundation with the bricks others throw.", "David Brinkley"},
	{"You must do the things you think you cannot do.", "Eleanor Roosevelt"},
	{"Three things in human life are important: The first is to be kind.", "Henry James"},
	{"Be less curious about people and more curious about ideas.", "Marie Curie"},
	{"Happiness is as a butterfly which, when pursued, is always beyond our grasp.", "Nathaniel Hawthorne"},
	{"By nature, man hates change; seldom will he quit his old home till it has fallen.", "Thomas Carlyle"},
	{"Minds are like parachutes. They only function when open.", "Thomas Dewar"},
	{"I can't imagine a person becoming a success who doesn't give this game everything.", "Walter Cronkite"},
	{"Adopt the pace of nature: her secret is patience.", "Ralph Waldo Emerson"},
	{"The only true wisdom is in knowing you know nothing.", "Isocrates"},
	{"Nature and books belong to the eyes that see them.", "Ralph Waldo Emerson"},
	{"Peace cannot be kept by force. It can only be achieved by understanding.", "Albert Einstein"},
	{"If you can't explain it simply, you don't understand it well enough.", "Albert Einstein"},
	{"To have much learning and skill, to be well-trained in discipline, is the highest blessing.", "The Buddha"},
	{"A single lamp may light hundreds of thousands of lamps without itself being diminished.", "The Buddha"},
	{"How many cares one loses when one decides not to be something but to be someone.", "Coco Chanel"},
	{"I cannot give you the formula for success, but I can give you the formula for failure.", "Herbert Bayard Swope"},
	{"There are two kinds of failures: those who thought and never did.", "Laurence J. Peter"},
	{"Do not be too timid and squeamish about your reactions. All life is an experiment.", "Ralph Waldo Emerson"},
	{"Only those who dare to fail greatly can ever achieve greatly.", "Robert F. Kennedy"},
	{"Change your life today. Don't gamble on the future, act now, without delay.", "Simone de Beauvoir"},
	{"Independence is happiness.", "Susan B. Anthony"},
	{"There is nothing on this earth more to be prized than true friendship.", "Thomas Aquinas"},
	{"What we think determines what happens to us.", "Wayne Dyer"},
	{"Look up at the stars and not down at your feet. Try to make sense of what you see.", "Stephen Hawking"},
	{"The doors of wisdom are never shut.", "Benjamin Franklin"},
	{"The strong bond of friendship is not always a balanced equation.", "Simon Sinek"},
	{"Rare as is true love, true friendship is rarer.", "Jean de La Fontaine"},
	{"Blessed is the man who expects nothing, for he shall never be disappointed.", "Alexander Pope"},
	{"Kind words do not cost much. Yet they accomplish much.", "Blaise Pascal"},
	{"You can only grow if you're willing to feel awkward and uncomfortable.", "Brian Tracy"},
	{"It does not matter how slowly you go as long as you do not stop.", "Confucius"},
	{"Fine words and an insinuating appearance are seldom associated with true virtue.", "Confucius"},
	{"The superior man acts before he speaks.", "Confucius"},
	{"Things do not change; we change.", "Henry David Thoreau"},
	{"Very little is needed to make a happy life; it is all within yourself.", "Marcus Aurelius"},
	{"If you want a thing done well, do it yourself.", "Napoleon"},
	{"The only journey is the one within.", "Rainer Maria Rilke"},
	{"Good thoughts are no better than good dreams, unless they be executed.", "Ralph Waldo Emerson"},
	{"Time changes everything except something within us which is always surprised by change.", "Thomas Hardy"},
	{"The way we communicate with others ultimately determines the quality of our lives.", "Tony Robbins"},
	{"I know where I'm going and I know the truth, and I don't have to be what you want me to be.", "Muhammad Ali"},
	{"Between saying and doing, many a pair of shoes is worn out.", "Iris Murdoch"},
	{"True happiness arises from the enjoyment of oneself and friendship of select companions.", "Joseph Addison"},
	{"Our most intimate friend is not he to whom we show the worst.", "Nathaniel Hawthorne"},
	{"There is no friendship, no love, like that of the parent for the child.", "Henry Ward Beecher"},
	{"Always bear in mind that your own resolution to succeed is more important.", "Abraham Lincoln"},
	{"Once we accept our limits, we go beyond them.", "Albert Einstein"},
	{"Feeling and longing are the motive forces behind all human endeavor.", "Albert Einstein"},
	{"We all live with the objective of being happy; our lives are all different.", "Anne Frank"},
	{"There is only one success: to be able to spend your life in your own way.", "Christopher Morley"},
	{"When deeds and words are in accord, the whole world is transformed.", "Zhuang Zhou"},
	{"Until you make peace with who you are, you'll never be content with what you have.", "Doris Mortman"},
	{"Do what you can. Want what you have. Be who you are.", "Forrest Church"},
	{"If you think you can, you can. And if you think you can't, you're right.", "Henry Ford"},
	{"Silence is a source of great strength.", "Laozi"},
	{"All difficult things have their origin in that which is easy.", "Laozi"},
	{"Always be smarter than the people who hire you.", "Lena Horne"},
	{"Although there may be tragedy in your life, there's always a possibility to triumph.", "Oprah Winfrey"},
	{"Most of the shadows of life are caused by standing in our own sunshine.", "Ralph Waldo Emerson"},
	{"The mark of your ignorance is the depth of your belief in injustice and tragedy.", "Richard Bach"},
}
