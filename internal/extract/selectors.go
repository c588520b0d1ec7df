// internal/extract/selectors.go
package extract

// Field-specific selector lists, ordered most-specific first. Real
// pages rename classes constantly, so attribute-fragment selectors
// ([class*=...], [data-testid*=...]) carry most of the weight.
var (
	priceSelectors = []string{
		"[data-testid*=price]",
		"[data-label*=price]",
		"[class*=price i]",
		"[itemprop=price]",
		".price",
	}

	addressSelectors = []string{
		"[data-testid*=address]",
		"[data-label*=address]",
		"[class*=address i]",
		"[itemprop=address]",
		"address",
	}

	bedsSelectors = []string{
		"[data-testid*=bed]",
		"[data-label*=bed]",
		"[class*=bed i]",
	}

	bathsSelectors = []string{
		"[data-testid*=bath]",
		"[data-label*=bath]",
		"[class*=bath i]",
	}

	sqftSelectors = []string{
		"[data-testid*=sqft]",
		"[data-label*=sqft]",
		"[class*=sqft i]",
		"[class*=square i]",
	}

	statusSelectors = []string{
		"[data-testid*=status]",
		"[data-label*=status]",
		"[class*=status i]",
		"[class*=badge i]",
		"[class*=label i]",
	}

	propertyTypeSelectors = []string{
		"[data-testid*=property-type]",
		"[class*=property-type i]",
		"[class*=propertytype i]",
		"[itemprop=type]",
	}

	descriptionSelectors = []string{
		"[data-testid*=description]",
		"[class*=description i]",
		"[class*=remarks i]",
		"[itemprop=description]",
	}

	detailLinkSelectors = []string{
		"a[href*='/realestateandhomes-detail/']",
		"a[href*='/detail/']",
		"a[href*='/homedetails/']",
		"a[href*='/property/']",
		"a[data-testid*=card-link]",
		"a[href]",
	}

	photoSelectors = []string{
		"img[data-testid*=photo]",
		"img[class*=photo i]",
		"img[class*=image i]",
		"picture img",
		"img",
	}

	reviewAuthorSelectors = []string{
		"[data-testid*=author]",
		"[class*=author i]",
		"[class*=reviewer i]",
		"[class*=name i]",
		"[itemprop=author]",
		"cite",
	}

	reviewDateSelectors = []string{
		"[data-testid*=date]",
		"[class*=date i]",
		"time",
		"[itemprop=datePublished]",
	}

	reviewRatingSelectors = []string{
		"[data-testid*=rating]",
		"[class*=rating i]",
		"[class*=stars i]",
		"[aria-label*=star]",
		"[itemprop=ratingValue]",
	}

	reviewTextSelectors = []string{
		"[data-testid*=review-text]",
		"[class*=review-text i]",
		"[class*=comment i]",
		"[class*=testimonial i]",
		"blockquote",
		"[itemprop=reviewBody]",
		"p",
	}

	agentNameSelectors = []string{
		"[data-testid*=agent-name]",
		"[class*=agent-name i]",
		"[class*=profile-name i]",
		"[itemprop=name]",
		"h1",
		"h2",
	}

	agentPhotoSelectors = []string{
		"img[data-testid*=profile]",
		"img[class*=profile i]",
		"img[class*=agent i]",
		"img[class*=avatar i]",
		"img[class*=headshot i]",
	}

	agentPhoneSelectors = []string{
		"a[href^='tel:']",
		"[data-testid*=phone]",
		"[class*=phone i]",
		"[itemprop=telephone]",
	}

	agentEmailSelectors = []string{
		"a[href^='mailto:']",
		"[data-testid*=email]",
		"[class*=email i]",
		"[itemprop=email]",
	}

	agentWebsiteSelectors = []string{
		"[data-testid*=website] a[href]",
		"a[class*=website i]",
		"[itemprop=url]",
	}

	agentSocialSelectors = []string{
		"a[href*='facebook.com']",
		"a[href*='instagram.com']",
		"a[href*='linkedin.com']",
		"a[href*='twitter.com']",
		"a[href*='x.com/']",
		"a[href*='youtube.com']",
	}
)
